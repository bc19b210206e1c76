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

type assignmentReq struct {
	SurveyID   uint       `json:"survey" binding:"required"`
	EmployeeID uint       `json:"employee" binding:"required"`
	DueDate    *time.Time `json:"due_date"`
}

// POST /api/survey-assignments
func CreateAssignment(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req assignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var survey models.Survey
	if err := config.DB.First(&survey, req.SurveyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Survey not found"})
		return
	}
	var employee models.Employee
	if err := config.DB.First(&employee, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}

	// One assignment per (survey, employee); the unique index backs this up.
	var count int64
	config.DB.Model(&models.SurveyAssignment{}).
		Where("survey_id = ? AND employee_id = ?", survey.ID, employee.ID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Employee is already assigned this survey"})
		return
	}

	assignment := models.SurveyAssignment{
		SurveyID:     survey.ID,
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

// GET /api/survey-assignments
//
// Admin sees all rows. HR sees rows whose employee is in the caller's
// department; with no department set that is the empty set. An employee sees
// only their own rows.
func ListAssignments(c *gin.Context) {
	u := middleware.CurrentUser(c)

	query := config.DB.Model(&models.SurveyAssignment{}).
		Select("survey_assignments.*").
		Preload("Survey").
		Preload("Employee.User")

	switch {
	case u.IsAdmin():
		// unrestricted
	case u.IsHROfficer():
		if u.DepartmentID == nil {
			c.JSON(http.StatusOK, []models.SurveyAssignment{})
			return
		}
		query = query.
			Joins("JOIN employees ON employees.id = survey_assignments.employee_id").
			Joins("JOIN users ON users.id = employees.user_id").
			Where("users.department_id = ?", *u.DepartmentID)
	default:
		query = query.
			Joins("JOIN employees ON employees.id = survey_assignments.employee_id").
			Where("employees.user_id = ?", u.ID)
	}

	var assignments []models.SurveyAssignment
	if err := query.Order("survey_assignments.id").Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// GET /api/survey-assignments/my_assignments — the caller's pending work.
func MyAssignments(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var assignments []models.SurveyAssignment
	if err := config.DB.
		Select("survey_assignments.*").
		Preload("Survey").
		Joins("JOIN employees ON employees.id = survey_assignments.employee_id").
		Where("employees.user_id = ? AND survey_assignments.is_completed = ?", u.ID, false).
		Order("survey_assignments.id").
		Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// GET /api/survey-assignments/:id — same visibility rules as the list.
func GetAssignment(c *gin.Context) {
	u := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var assignment models.SurveyAssignment
	if err := config.DB.
		Preload("Survey").
		Preload("Employee.User").
		First(&assignment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}
	if !assignmentVisible(u, assignment) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

type updateAssignmentReq struct {
	DueDate *time.Time `json:"due_date"`
}

// PUT /api/survey-assignments/:id
func UpdateAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var assignment models.SurveyAssignment
	if err := config.DB.First(&assignment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}

	var req updateAssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if req.DueDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&assignment).Update("due_date", req.DueDate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// DELETE /api/survey-assignments/:id — responses go with it.
func DeleteAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var assignment models.SurveyAssignment
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

// assignmentVisible mirrors the list scoping for a single row.
func assignmentVisible(u models.User, a models.SurveyAssignment) bool {
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
