package models

import (
	"time"

	"gorm.io/gorm"
)

// SurveyAssignment binds one employee to one survey. At most one assignment
// may exist per (survey, employee) pair.
type SurveyAssignment struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID     uint       `gorm:"column:survey_id;not null;uniqueIndex:idx_assignment_survey_employee" json:"survey"`
	Survey       *Survey    `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"survey_details,omitempty"`
	EmployeeID   uint       `gorm:"column:employee_id;not null;uniqueIndex:idx_assignment_survey_employee" json:"employee"`
	Employee     *Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee_details,omitempty"`
	AssignedByID *uint      `gorm:"column:assigned_by_id" json:"assigned_by"`
	AssignedBy   *User      `gorm:"foreignKey:AssignedByID;constraint:OnDelete:SET NULL" json:"-"`
	AssignedAt   time.Time  `gorm:"column:assigned_at;autoCreateTime" json:"assigned_at"`
	DueDate      *time.Time `gorm:"column:due_date" json:"due_date"`
	IsCompleted  bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at"`

	Responses []SurveyResponse `gorm:"foreignKey:AssignmentID" json:"-"`
}

func (SurveyAssignment) TableName() string {
	return "survey_assignments"
}

// BeforeDelete removes the responses the assignment owns.
func (a *SurveyAssignment) BeforeDelete(tx *gorm.DB) error {
	return tx.Where("assignment_id = ?", a.ID).Delete(&SurveyResponse{}).Error
}
