package models

import "gorm.io/datatypes"

// Question types. Choice types (RADIO, CHECKBOX, DROPDOWN) carry their
// candidate answers in Options; the rest leave Options empty.
const (
	QuestionText     = "TEXT"
	QuestionTextarea = "TEXTAREA"
	QuestionRadio    = "RADIO"
	QuestionCheckbox = "CHECKBOX"
	QuestionDropdown = "DROPDOWN"
	QuestionRating   = "RATING"
)

type Question struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID   uint           `gorm:"column:survey_id;not null;index" json:"survey"`
	Survey     *Survey        `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
	Text       string         `gorm:"column:text;type:text;not null" json:"text"`
	Type       string         `gorm:"column:type;size:20;not null" json:"type"`
	Options    datatypes.JSON `gorm:"column:options" json:"options,omitempty"`
	IsRequired bool           `gorm:"column:is_required;not null;default:true" json:"is_required"`
	Order      int            `gorm:"column:sort_order;not null;default:0" json:"order"`
	FactorID   *uint          `gorm:"column:factor_id" json:"factor"`
	Factor     *Factor        `gorm:"foreignKey:FactorID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

func ValidQuestionType(t string) bool {
	switch t {
	case QuestionText, QuestionTextarea, QuestionRadio, QuestionCheckbox,
		QuestionDropdown, QuestionRating:
		return true
	}
	return false
}

// IsChoiceType reports whether the question constrains answers to Options.
func (q Question) IsChoiceType() bool {
	switch q.Type {
	case QuestionRadio, QuestionCheckbox, QuestionDropdown:
		return true
	}
	return false
}
