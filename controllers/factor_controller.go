package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/middleware"
	"github.com/ndtoan/hr-survey-server/models"
)

type factorReq struct {
	Name        string `json:"name" binding:"required,min=1"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"omitempty,oneof=TURNOVER NON_TURNOVER"`
}

// POST /api/factors
func CreateFactor(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req factorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = models.FactorNonTurnover
	}

	factor := models.Factor{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		CreatedByID: &u.ID,
	}
	if err := config.DB.Create(&factor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create factor"})
		return
	}
	c.JSON(http.StatusCreated, factor)
}

// GET /api/factors
func ListFactors(c *gin.Context) {
	var factors []models.Factor
	if err := config.DB.Order("id").Find(&factors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch factors"})
		return
	}
	c.JSON(http.StatusOK, factors)
}

// GET /api/factors/:id
func GetFactor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var factor models.Factor
	if err := config.DB.First(&factor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Factor not found"})
		return
	}
	c.JSON(http.StatusOK, factor)
}

// PUT /api/factors/:id
func UpdateFactor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var factor models.Factor
	if err := config.DB.First(&factor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Factor not found"})
		return
	}

	var req factorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if err := config.DB.Model(&factor).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, factor)
}

// DELETE /api/factors/:id
func DeleteFactor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var factor models.Factor
	if err := config.DB.First(&factor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Factor not found"})
		return
	}
	if err := config.DB.Delete(&factor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
