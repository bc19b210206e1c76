package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/middleware"
	"github.com/ndtoan/hr-survey-server/models"
)

type surveyReq struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=END_CONTRACT RENEWAL MID_CONTRACT ONBOARDING"`
	IsActive    *bool  `json:"is_active"`
}

// POST /api/surveys
func CreateSurvey(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req surveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	survey := models.Survey{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CreatedByID: u.ID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		survey.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&survey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create survey"})
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// GET /api/surveys
//
// Admin and HR see every survey. An employee sees only surveys with an
// incomplete assignment addressed to them.
func ListSurveys(c *gin.Context) {
	u := middleware.CurrentUser(c)

	query := config.DB.Model(&models.Survey{})
	if !u.IsAdmin() && !u.IsHROfficer() {
		query = query.
			Select("surveys.*").
			Joins("JOIN survey_assignments ON survey_assignments.survey_id = surveys.id").
			Joins("JOIN employees ON employees.id = survey_assignments.employee_id").
			Where("employees.user_id = ? AND survey_assignments.is_completed = ?", u.ID, false)
	}

	var surveys []models.Survey
	if err := query.Order("surveys.id").Find(&surveys).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch surveys"})
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// GET /api/surveys/:id — includes the survey's questions in order. Visibility
// follows the list: a survey an employee has no pending assignment for does
// not exist as far as they can tell.
func GetSurvey(c *gin.Context) {
	u := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	query := config.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		})
	if !u.IsAdmin() && !u.IsHROfficer() {
		query = query.
			Select("surveys.*").
			Joins("JOIN survey_assignments ON survey_assignments.survey_id = surveys.id").
			Joins("JOIN employees ON employees.id = survey_assignments.employee_id").
			Where("employees.user_id = ? AND survey_assignments.is_completed = ?", u.ID, false)
	}

	var survey models.Survey
	if err := query.First(&survey, "surveys.id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Survey not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          survey.ID,
		"title":       survey.Title,
		"description": survey.Description,
		"category":    survey.Category,
		"created_by":  survey.CreatedByID,
		"is_active":   survey.IsActive,
		"created_at":  survey.CreatedAt,
		"updated_at":  survey.UpdatedAt,
		"questions":   survey.Questions,
	})
}

// PUT /api/surveys/:id
func UpdateSurvey(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var survey models.Survey
	if err := config.DB.First(&survey, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Survey not found"})
		return
	}

	var req surveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := config.DB.Model(&survey).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, survey)
}

// DELETE /api/surveys/:id — questions, assignments and responses go with it.
func DeleteSurvey(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var survey models.Survey
	if err := config.DB.First(&survey, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Survey not found"})
		return
	}
	if err := config.DB.Delete(&survey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type responseEntry struct {
	QuestionID uint            `json:"question_id" binding:"required"`
	Answer     json.RawMessage `json:"answer" binding:"required"`
}

type submitSurveyReq struct {
	AssignmentID uint            `json:"assignment_id" binding:"required"`
	Responses    []responseEntry `json:"responses" binding:"required"`
}

// POST /api/surveys/:id/submit
//
// Records the caller's answers against their assignment and closes it out.
// Entries naming questions that are not on this survey are dropped without
// an error. The assignment is marked completed even when every entry was
// dropped.
func SubmitSurvey(c *gin.Context) {
	u := middleware.CurrentUser(c)

	surveyID, err := strconv.Atoi(c.Param("id"))
	if err != nil || surveyID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var survey models.Survey
	if err := config.DB.First(&survey, surveyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Survey not found"})
		return
	}

	var req submitSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	// The assignment must be for this survey and belong to the caller's own
	// employee record. Anything else is indistinguishable from absent.
	var assignment models.SurveyAssignment
	if err := config.DB.
		Select("survey_assignments.*").
		Joins("JOIN employees ON employees.id = survey_assignments.employee_id").
		Where("survey_assignments.id = ? AND survey_assignments.survey_id = ? AND employees.user_id = ?",
			req.AssignmentID, survey.ID, u.ID).
		First(&assignment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Survey assignment not found"})
		return
	}

	var questions []models.Question
	if err := config.DB.Where("survey_id = ?", survey.ID).Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load questions"})
		return
	}
	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	// Shape-check every answer that targets a known question before writing
	// anything, so a rejected payload leaves no partial state behind.
	for _, entry := range req.Responses {
		q, ok := byID[entry.QuestionID]
		if !ok {
			continue
		}
		if err := ValidateAnswer(q, entry.Answer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid answer", "error": err.Error()})
			return
		}
	}

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for _, entry := range req.Responses {
			if _, ok := byID[entry.QuestionID]; !ok {
				// Unknown question on this survey: dropped, not reported.
				continue
			}
			resp := models.SurveyResponse{
				AssignmentID: assignment.ID,
				QuestionID:   entry.QuestionID,
				Answer:       datatypes.JSON(entry.Answer),
				SubmittedAt:  now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"answer", "submitted_at"}),
			}).Create(&resp).Error; err != nil {
				return err
			}
		}

		return tx.Model(&assignment).Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
		}).Error
	})
	if err != nil {
		log.Printf("submit survey %d assignment %d: %v", survey.ID, assignment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "survey submitted"})
}
