package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/middleware"
	"github.com/ndtoan/hr-survey-server/models"
)

type trainingReq struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// POST /api/trainings
func CreateTraining(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req trainingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	training := models.Training{
		Title:       req.Title,
		Description: req.Description,
		CreatedByID: u.ID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		training.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&training).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create training"})
		return
	}
	c.JSON(http.StatusCreated, training)
}

// GET /api/trainings
//
// Admin and HR see every training. An employee sees only trainings assigned
// to them, completed or not.
func ListTrainings(c *gin.Context) {
	u := middleware.CurrentUser(c)

	query := config.DB.Model(&models.Training{})
	if !u.IsAdmin() && !u.IsHROfficer() {
		query = query.
			Select("DISTINCT trainings.*").
			Joins("JOIN training_assignments ON training_assignments.training_id = trainings.id").
			Joins("JOIN employees ON employees.id = training_assignments.employee_id").
			Where("employees.user_id = ?", u.ID)
	}

	var trainings []models.Training
	if err := query.Order("trainings.id").Find(&trainings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch trainings"})
		return
	}
	c.JSON(http.StatusOK, trainings)
}

// GET /api/trainings/:id — same visibility as the list.
func GetTraining(c *gin.Context) {
	u := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	query := config.DB.Model(&models.Training{})
	if !u.IsAdmin() && !u.IsHROfficer() {
		query = query.
			Select("trainings.*").
			Joins("JOIN training_assignments ON training_assignments.training_id = trainings.id").
			Joins("JOIN employees ON employees.id = training_assignments.employee_id").
			Where("employees.user_id = ?", u.ID)
	}

	var training models.Training
	if err := query.First(&training, "trainings.id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Training not found"})
		return
	}
	c.JSON(http.StatusOK, training)
}

// PUT /api/trainings/:id
func UpdateTraining(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var training models.Training
	if err := config.DB.First(&training, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Training not found"})
		return
	}

	var req trainingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := config.DB.Model(&training).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, training)
}

// DELETE /api/trainings/:id — assignments go with it.
func DeleteTraining(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var training models.Training
	if err := config.DB.First(&training, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Training not found"})
		return
	}
	if err := config.DB.Delete(&training).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
