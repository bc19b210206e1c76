package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/middleware"
	"github.com/ndtoan/hr-survey-server/models"
)

// Raw response CRUD. Employees record answers through the submission flow;
// these endpoints exist for admin/HR housekeeping and scoped reads.

type responseReq struct {
	AssignmentID uint            `json:"assignment" binding:"required"`
	QuestionID   uint            `json:"question" binding:"required"`
	Answer       json.RawMessage `json:"answer" binding:"required"`
}

// POST /api/survey-responses
func CreateResponse(c *gin.Context) {
	var req responseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var assignment models.SurveyAssignment
	if err := config.DB.First(&assignment, req.AssignmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Assignment not found"})
		return
	}
	var question models.Question
	if err := config.DB.First(&question, req.QuestionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Question not found"})
		return
	}
	if question.SurveyID != assignment.SurveyID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Question is not on the assignment's survey"})
		return
	}
	if err := ValidateAnswer(question, req.Answer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid answer", "error": err.Error()})
		return
	}

	resp := models.SurveyResponse{
		AssignmentID: assignment.ID,
		QuestionID:   question.ID,
		Answer:       datatypes.JSON(req.Answer),
		SubmittedAt:  time.Now(),
	}
	if err := config.DB.Create(&resp).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Could not create response"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /api/survey-responses
//
// Visibility follows the assignment's employee: admin all, HR their
// department, employee their own.
func ListResponses(c *gin.Context) {
	u := middleware.CurrentUser(c)

	query := config.DB.Model(&models.SurveyResponse{}).
		Select("survey_responses.*").
		Preload("Question")

	switch {
	case u.IsAdmin():
		// unrestricted
	case u.IsHROfficer():
		if u.DepartmentID == nil {
			c.JSON(http.StatusOK, []models.SurveyResponse{})
			return
		}
		query = query.
			Joins("JOIN survey_assignments ON survey_assignments.id = survey_responses.assignment_id").
			Joins("JOIN employees ON employees.id = survey_assignments.employee_id").
			Joins("JOIN users ON users.id = employees.user_id").
			Where("users.department_id = ?", *u.DepartmentID)
	default:
		query = query.
			Joins("JOIN survey_assignments ON survey_assignments.id = survey_responses.assignment_id").
			Joins("JOIN employees ON employees.id = survey_assignments.employee_id").
			Where("employees.user_id = ?", u.ID)
	}

	var responses []models.SurveyResponse
	if err := query.Order("survey_responses.id").Find(&responses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch responses"})
		return
	}
	c.JSON(http.StatusOK, responses)
}

// GET /api/survey-responses/:id
func GetResponse(c *gin.Context) {
	u := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var resp models.SurveyResponse
	if err := config.DB.
		Preload("Question").
		Preload("Assignment.Employee.User").
		First(&resp, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Response not found"})
		return
	}
	if resp.Assignment == nil || !assignmentVisible(u, *resp.Assignment) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Response not found"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

type updateResponseReq struct {
	Answer json.RawMessage `json:"answer" binding:"required"`
}

// PUT /api/survey-responses/:id
func UpdateResponse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var resp models.SurveyResponse
	if err := config.DB.Preload("Question").First(&resp, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Response not found"})
		return
	}

	var req updateResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if resp.Question != nil {
		if err := ValidateAnswer(*resp.Question, req.Answer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid answer", "error": err.Error()})
			return
		}
	}

	if err := config.DB.Model(&resp).Updates(map[string]interface{}{
		"answer":       datatypes.JSON(req.Answer),
		"submitted_at": time.Now(),
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/survey-responses/:id
func DeleteResponse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var resp models.SurveyResponse
	if err := config.DB.First(&resp, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Response not found"})
		return
	}
	if err := config.DB.Delete(&resp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
