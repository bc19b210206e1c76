package models

import "time"

// TrainingAssignment binds one employee to one training program. At most one
// assignment may exist per (training, employee) pair.
type TrainingAssignment struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TrainingID   uint       `gorm:"column:training_id;not null;uniqueIndex:idx_training_assignment_training_employee" json:"training"`
	Training     *Training  `gorm:"foreignKey:TrainingID;constraint:OnDelete:CASCADE" json:"training_details,omitempty"`
	EmployeeID   uint       `gorm:"column:employee_id;not null;uniqueIndex:idx_training_assignment_training_employee" json:"employee"`
	Employee     *Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee_details,omitempty"`
	AssignedByID *uint      `gorm:"column:assigned_by_id" json:"assigned_by"`
	AssignedBy   *User      `gorm:"foreignKey:AssignedByID;constraint:OnDelete:SET NULL" json:"-"`
	AssignedAt   time.Time  `gorm:"column:assigned_at;autoCreateTime" json:"assigned_at"`
	DueDate      *time.Time `gorm:"column:due_date" json:"due_date"`
	IsCompleted  bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at"`
}

func (TrainingAssignment) TableName() string {
	return "training_assignments"
}
