package personnel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmploymentInfo is owned by exactly one User. Designation is a non-owning
// reference: many employment records may point at one Role.
type EmploymentInfo struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	DesignationID uuid.UUID       `gorm:"type:uuid;not null;index;column:designation_id" json:"designationId"`
	Designation   *Role           `gorm:"foreignKey:DesignationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"designation,omitempty"`
	EmpID         int             `gorm:"not null;column:emp_id" json:"empId"`
	Email         *string         `gorm:"type:varchar(255);column:email" json:"email,omitempty"`
	JoiningDate   *datatypes.Date `gorm:"column:joining_date" json:"joiningDate,omitempty"`
	ExpYears      *int            `gorm:"column:exp_years" json:"expYears,omitempty"`
	ExpMonths     *int            `gorm:"column:exp_months" json:"expMonths,omitempty"`
	ExpDays       *int            `gorm:"column:exp_days" json:"expDays,omitempty"`
	NoticePeriod  int             `gorm:"not null;column:notice_period" json:"noticePeriod"`
	CreatedAt     time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"deletedAt,omitempty"`
}

func (EmploymentInfo) TableName() string { return "employment_info" }

func (e *EmploymentInfo) BeforeCreate(*gorm.DB) error {
	ensureID(&e.ID)
	return nil
}
