package personnel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MobileLength is the exact number of characters a mobile number must have.
const MobileLength = 10

// PersonalInfo is owned by exactly one User and has no lifecycle of its own.
type PersonalInfo struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string          `gorm:"type:varchar(100);not null;column:first_name" json:"firstName"`
	LastName    string          `gorm:"type:varchar(100);not null;column:last_name" json:"lastName"`
	Mobile      string          `gorm:"type:varchar(10);not null;column:mobile" json:"mobile"`
	DateOfBirth *datatypes.Date `gorm:"column:date_of_birth" json:"dateOfBirth,omitempty"`
	Email       *string         `gorm:"type:varchar(255);column:email" json:"email,omitempty"`
	BloodGroup  *BloodGroup     `gorm:"type:varchar(3);column:blood_group" json:"bloodGroup,omitempty"`
	Address     *string         `gorm:"type:text;column:address" json:"address,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"deletedAt,omitempty"`
}

func (PersonalInfo) TableName() string { return "personal_info" }

func (p *PersonalInfo) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
