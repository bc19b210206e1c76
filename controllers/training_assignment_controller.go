package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/middleware"
	"github.com/ndtoan/hr-survey-server/models"
)

type trainingAssignmentReq struct {
	TrainingID uint       `json:"training" binding:"required"`
	EmployeeID uint       `json:"employee" binding:"required"`
	DueDate    *time.Time `json:"due_date"`
}

// POST /api/training-assignments
func CreateTrainingAssignment(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req trainingAssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var training models.Training
	if err := config.DB.First(&training, req.TrainingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Training not found"})
		return
	}
	var employee models.Employee
	if err := config.DB.First(&employee, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}

	// One assignment per (training, employee); the unique index backs this up.
	var count int64
	config.DB.Model(&models.TrainingAssignment{}).
		Where("training_id = ? AND employee_id = ?", training.ID, employee.ID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Employee is already assigned this training"})
		return
	}

	assignment := models.TrainingAssignment{
		TrainingID:   training.ID,
		EmployeeID:   employee.ID,
		AssignedByID: &u.ID,
		DueDate:      req.DueDate,
	}
	if err := config.DB.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Could not create assignment"})
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// GET /api/training-assignments
//
// Same three-way visibility as survey assignments: admin sees all, HR sees
// their department's employees, an employee sees their own rows.
func ListTrainingAssignments(c *gin.Context) {
	u := middleware.CurrentUser(c)

	query := config.DB.Model(&models.TrainingAssignment{}).
		Select("training_assignments.*").
		Preload("Training").
		Preload("Employee.User")

	switch {
	case u.IsAdmin():
		// unrestricted
	case u.IsHROfficer():
		if u.DepartmentID == nil {
			c.JSON(http.StatusOK, []models.TrainingAssignment{})
			return
		}
		query = query.
			Joins("JOIN employees ON employees.id = training_assignments.employee_id").
			Joins("JOIN users ON users.id = employees.user_id").
			Where("users.department_id = ?", *u.DepartmentID)
	default:
		query = query.
			Joins("JOIN employees ON employees.id = training_assignments.employee_id").
			Where("employees.user_id = ?", u.ID)
	}

	var assignments []models.TrainingAssignment
	if err := query.Order("training_assignments.id").Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// GET /api/training-assignments/my_trainings — every assignment addressed to
// the caller, completed ones included.
func MyTrainings(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var assignments []models.TrainingAssignment
	if err := config.DB.
		Select("training_assignments.*").
		Preload("Training").
		Joins("JOIN employees ON employees.id = training_assignments.employee_id").
		Where("employees.user_id = ?", u.ID).
		Order("training_assignments.id").
		Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// GET /api/training-assignments/:id — same visibility rules as the list.
func GetTrainingAssignment(c *gin.Context) {
	u := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var assignment models.TrainingAssignment
	if err := config.DB.
		Preload("Training").
		Preload("Employee.User").
		First(&assignment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}
	if !trainingAssignmentVisible(u, assignment) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

type updateTrainingAssignmentReq struct {
	DueDate     *time.Time `json:"due_date"`
	IsCompleted *bool      `json:"is_completed"`
}

// PUT /api/training-assignments/:id — staff close trainings out by hand,
// there is no submission workflow behind them.
func UpdateTrainingAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var assignment models.TrainingAssignment
	if err := config.DB.First(&assignment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}

	var req updateTrainingAssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	updates := map[string]interface{}{}
	if req.DueDate != nil {
		updates["due_date"] = req.DueDate
	}
	if req.IsCompleted != nil {
		updates["is_completed"] = *req.IsCompleted
		if *req.IsCompleted {
			now := time.Now()
			updates["completed_at"] = now
		} else {
			updates["completed_at"] = nil
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&assignment).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// DELETE /api/training-assignments/:id
func DeleteTrainingAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var assignment models.TrainingAssignment
	if err := config.DB.First(&assignment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}
	if err := config.DB.Delete(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// trainingAssignmentVisible mirrors the list scoping for a single row.
func trainingAssignmentVisible(u models.User, a models.TrainingAssignment) bool {
	switch {
	case u.IsAdmin():
		return true
	case u.IsHROfficer():
		if u.DepartmentID == nil || a.Employee == nil || a.Employee.User == nil {
			return false
		}
		return a.Employee.User.DepartmentID != nil && *a.Employee.User.DepartmentID == *u.DepartmentID
	default:
		return a.Employee != nil && a.Employee.UserID == u.ID
	}
}
