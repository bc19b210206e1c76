package models

import (
	"time"

	"gorm.io/gorm"
)

// Training is a program HR assigns to employees, tracked through
// TrainingAssignment rows much like surveys are.
type Training struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"column:title;size:200;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedByID uint      `gorm:"column:created_by_id;not null" json:"created_by"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"-"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Assignments []TrainingAssignment `gorm:"foreignKey:TrainingID" json:"-"`
}

func (Training) TableName() string {
	return "trainings"
}

// BeforeDelete removes the training's assignments.
func (t *Training) BeforeDelete(tx *gorm.DB) error {
	return tx.Where("training_id = ?", t.ID).Delete(&TrainingAssignment{}).Error
}
