package models

import (
	"time"

	"gorm.io/gorm"
)

type Department struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Users []User `gorm:"foreignKey:DepartmentID" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}

// BeforeDelete detaches users from the removed department.
func (d *Department) BeforeDelete(tx *gorm.DB) error {
	return tx.Model(&User{}).
		Where("department_id = ?", d.ID).
		Update("department_id", nil).Error
}
