package personnel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is an organizational designation. Name uniqueness is case-insensitive and
// only enforced among rows that are not soft-deleted.
type Role struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null;column:name" json:"name"`
	Description *string        `gorm:"type:varchar(200);column:description" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Role) TableName() string { return "role" }

func (r *Role) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// SuperAdminRoleName is the designation seeded for the bootstrap administrator.
const SuperAdminRoleName = "Super Admin"
