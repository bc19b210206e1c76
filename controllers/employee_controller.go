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

type employeeReq struct {
	UserID       uint       `json:"user_id" binding:"required"`
	Position     string     `json:"position" binding:"required,min=1"`
	HireDate     *time.Time `json:"hire_date" binding:"required"`
	IsActive     *bool      `json:"is_active"`
	TurnoverRisk string     `json:"turnover_risk" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// POST /api/employees
func CreateEmployee(c *gin.Context) {
	var req employeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	emp := models.Employee{
		UserID:       user.ID,
		Position:     req.Position,
		HireDate:     *req.HireDate,
		IsActive:     true,
		TurnoverRisk: models.RiskLow,
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	if req.TurnoverRisk != "" {
		emp.TurnoverRisk = req.TurnoverRisk
	}
	if err := config.DB.Create(&emp).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Could not create employee profile"})
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// GET /api/employees — HR sees only their own department.
func ListEmployees(c *gin.Context) {
	u := middleware.CurrentUser(c)

	query := config.DB.Model(&models.Employee{}).
		Select("employees.*").
		Preload("User")
	if u.IsHROfficer() {
		if u.DepartmentID == nil {
			c.JSON(http.StatusOK, []models.Employee{})
			return
		}
		query = query.
			Joins("JOIN users ON users.id = employees.user_id").
			Where("users.department_id = ?", *u.DepartmentID)
	}

	var employees []models.Employee
	if err := query.Order("employees.id").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// GET /api/employees/me — any authenticated caller's own profile.
func MyEmployeeProfile(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var emp models.Employee
	if err := config.DB.Preload("User").Where("user_id = ?", u.ID).First(&emp).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Employee profile not found"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

// GET /api/employees/:id
func GetEmployee(c *gin.Context) {
	u := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var emp models.Employee
	if err := config.DB.Preload("User").First(&emp, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}
	if u.IsHROfficer() {
		if u.DepartmentID == nil || emp.User == nil ||
			emp.User.DepartmentID == nil || *emp.User.DepartmentID != *u.DepartmentID {
			c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
			return
		}
	}
	c.JSON(http.StatusOK, emp)
}

type updateEmployeeReq struct {
	Position     *string    `json:"position"`
	HireDate     *time.Time `json:"hire_date"`
	IsActive     *bool      `json:"is_active"`
	TurnoverRisk *string    `json:"turnover_risk" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// PUT /api/employees/:id
func UpdateEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var emp models.Employee
	if err := config.DB.First(&emp, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}

	var req updateEmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.HireDate != nil {
		updates["hire_date"] = *req.HireDate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.TurnoverRisk != nil {
		updates["turnover_risk"] = *req.TurnoverRisk
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&emp).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DELETE /api/employees/:id — assignments and responses go with it.
func DeleteEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var emp models.Employee
	if err := config.DB.First(&emp, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee not found"})
		return
	}
	if err := config.DB.Delete(&emp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
