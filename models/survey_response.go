package models

import (
	"time"

	"gorm.io/datatypes"
)

// SurveyResponse is one employee's answer to one question. The
// (assignment, question) pair is unique: resubmission overwrites the stored
// answer rather than adding a row.
type SurveyResponse struct {
	ID           uint              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AssignmentID uint              `gorm:"column:assignment_id;not null;uniqueIndex:idx_response_assignment_question" json:"assignment"`
	Assignment   *SurveyAssignment `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID   uint              `gorm:"column:question_id;not null;uniqueIndex:idx_response_assignment_question" json:"question"`
	Question     *Question         `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Answer       datatypes.JSON    `gorm:"column:answer;not null" json:"answer"`
	SubmittedAt  time.Time         `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}
