package personnel

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the aggregate root. It references the PersonalInfo and EmploymentInfo
// rows it owns; all three are written and deleted together.
type User struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Password         string          `gorm:"not null;column:password" json:"-"`
	PersonalInfoID   uuid.UUID       `gorm:"type:uuid;not null;index;column:personal_info_id" json:"-"`
	PersonalInfo     *PersonalInfo   `gorm:"foreignKey:PersonalInfoID" json:"personalInfo,omitempty"`
	EmploymentInfoID uuid.UUID       `gorm:"type:uuid;not null;index;column:employment_info_id" json:"-"`
	EmploymentInfo   *EmploymentInfo `gorm:"foreignKey:EmploymentInfoID" json:"employmentInfo,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;index" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updatedAt"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"deletedAt,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

// FullName is derived from PersonalInfo and never stored.
func (u *User) FullName() string {
	if u == nil || u.PersonalInfo == nil {
		return ""
	}
	return strings.TrimSpace(u.PersonalInfo.FirstName + " " + u.PersonalInfo.LastName)
}

// EmpID returns the employee number, or 0 when employment info is not loaded.
func (u *User) EmpID() int {
	if u == nil || u.EmploymentInfo == nil {
		return 0
	}
	return u.EmploymentInfo.EmpID
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
