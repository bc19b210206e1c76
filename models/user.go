package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values carried on every account.
const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
)

type User struct {
	ID           uint        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email        string      `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"column:password_hash;size:255;not null" json:"-"`
	FirstName    string      `gorm:"column:first_name;size:100" json:"first_name"`
	LastName     string      `gorm:"column:last_name;size:100" json:"last_name"`
	Role         string      `gorm:"column:role;size:10;not null;default:'EMPLOYEE'" json:"role"`
	DepartmentID *uint       `gorm:"column:department_id" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"-"`
	IsActive     bool        `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeDelete applies the per-relationship rules for a removed account:
// surveys and trainings the user created go with it, factors and assignments
// merely lose the reference, and the employee profile (with its assignments)
// is removed through its own hook.
func (u *User) BeforeDelete(tx *gorm.DB) error {
	var surveys []Survey
	if err := tx.Where("created_by_id = ?", u.ID).Find(&surveys).Error; err != nil {
		return err
	}
	for i := range surveys {
		if err := tx.Delete(&surveys[i]).Error; err != nil {
			return err
		}
	}
	var trainings []Training
	if err := tx.Where("created_by_id = ?", u.ID).Find(&trainings).Error; err != nil {
		return err
	}
	for i := range trainings {
		if err := tx.Delete(&trainings[i]).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(&Factor{}).
		Where("created_by_id = ?", u.ID).
		Update("created_by_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Model(&SurveyAssignment{}).
		Where("assigned_by_id = ?", u.ID).
		Update("assigned_by_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Model(&TrainingAssignment{}).
		Where("assigned_by_id = ?", u.ID).
		Update("assigned_by_id", nil).Error; err != nil {
		return err
	}
	var emp Employee
	if err := tx.Where("user_id = ?", u.ID).First(&emp).Error; err == nil {
		return tx.Delete(&emp).Error
	}
	return nil
}

func (u User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u User) IsHROfficer() bool { return u.Role == RoleHR }
func (u User) IsEmployee() bool  { return u.Role == RoleEmployee }

// FullName joins first and last name, tolerating either being empty.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
