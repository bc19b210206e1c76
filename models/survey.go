package models

import (
	"time"

	"gorm.io/gorm"
)

// Survey categories, one per moment in the employment lifecycle.
const (
	CategoryEndContract = "END_CONTRACT"
	CategoryRenewal     = "RENEWAL"
	CategoryMidContract = "MID_CONTRACT"
	CategoryOnboarding  = "ONBOARDING"
)

type Survey struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"column:title;size:200;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Category    string    `gorm:"column:category;size:50;not null" json:"category"`
	CreatedByID uint      `gorm:"column:created_by_id;not null" json:"created_by"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Questions   []Question         `gorm:"foreignKey:SurveyID" json:"-"`
	Assignments []SurveyAssignment `gorm:"foreignKey:SurveyID" json:"-"`
}

func (Survey) TableName() string {
	return "surveys"
}

// BeforeDelete removes everything the survey owns: questions, assignments and
// the responses hanging off those assignments. Stated here explicitly so the
// behavior does not depend on engine-level cascade support.
func (s *Survey) BeforeDelete(tx *gorm.DB) error {
	if err := tx.Where("assignment_id IN (?)",
		tx.Session(&gorm.Session{NewDB: true}).
			Model(&SurveyAssignment{}).
			Select("id").
			Where("survey_id = ?", s.ID),
	).Delete(&SurveyResponse{}).Error; err != nil {
		return err
	}
	if err := tx.Where("survey_id = ?", s.ID).Delete(&SurveyAssignment{}).Error; err != nil {
		return err
	}
	return tx.Where("survey_id = ?", s.ID).Delete(&Question{}).Error
}

func ValidSurveyCategory(c string) bool {
	switch c {
	case CategoryEndContract, CategoryRenewal, CategoryMidContract, CategoryOnboarding:
		return true
	}
	return false
}
