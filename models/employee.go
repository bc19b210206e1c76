package models

import (
	"time"

	"gorm.io/gorm"
)

// Turnover risk bands maintained by HR on each employee profile.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Employee is the HR profile layered on top of a User account.
type Employee struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Position     string    `gorm:"column:position;size:100;not null" json:"position"`
	HireDate     time.Time `gorm:"column:hire_date;not null" json:"hire_date"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	TurnoverRisk string    `gorm:"column:turnover_risk;size:10;not null;default:'LOW'" json:"turnover_risk"`

	Assignments         []SurveyAssignment   `gorm:"foreignKey:EmployeeID" json:"-"`
	TrainingAssignments []TrainingAssignment `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// BeforeDelete drops the employee's assignments and their responses.
func (e *Employee) BeforeDelete(tx *gorm.DB) error {
	if err := tx.Where("assignment_id IN (?)",
		tx.Session(&gorm.Session{NewDB: true}).
			Model(&SurveyAssignment{}).
			Select("id").
			Where("employee_id = ?", e.ID),
	).Delete(&SurveyResponse{}).Error; err != nil {
		return err
	}
	if err := tx.Where("employee_id = ?", e.ID).Delete(&SurveyAssignment{}).Error; err != nil {
		return err
	}
	return tx.Where("employee_id = ?", e.ID).Delete(&TrainingAssignment{}).Error
}

func ValidTurnoverRisk(r string) bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}
