package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/models"
)

type departmentReq struct {
	Name        string `json:"name" binding:"required,min=1"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// POST /api/departments
func CreateDepartment(c *gin.Context) {
	var req departmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	dept := models.Department{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&dept).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create department"})
		return
	}
	c.JSON(http.StatusCreated, dept)
}

// GET /api/departments
func ListDepartments(c *gin.Context) {
	var depts []models.Department
	if err := config.DB.Order("name").Find(&depts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch departments"})
		return
	}
	c.JSON(http.StatusOK, depts)
}

// GET /api/departments/:id
func GetDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var dept models.Department
	if err := config.DB.First(&dept, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Department not found"})
		return
	}

	var employeeCount int64
	config.DB.Model(&models.User{}).Where("department_id = ?", dept.ID).Count(&employeeCount)

	c.JSON(http.StatusOK, gin.H{
		"id":             dept.ID,
		"name":           dept.Name,
		"description":    dept.Description,
		"is_active":      dept.IsActive,
		"created_at":     dept.CreatedAt,
		"updated_at":     dept.UpdatedAt,
		"employee_count": employeeCount,
	})
}

// PUT /api/departments/:id
func UpdateDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var dept models.Department
	if err := config.DB.First(&dept, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Department not found"})
		return
	}

	var req departmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := config.DB.Model(&dept).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, dept)
}

// DELETE /api/departments/:id
func DeleteDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var dept models.Department
	if err := config.DB.First(&dept, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Department not found"})
		return
	}
	if err := config.DB.Delete(&dept).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
