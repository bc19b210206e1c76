package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/models"
)

type questionReq struct {
	SurveyID   uint            `json:"survey" binding:"required"`
	Text       string          `json:"text" binding:"required,min=1"`
	Type       string          `json:"type" binding:"required,oneof=TEXT TEXTAREA RADIO CHECKBOX DROPDOWN RATING"`
	Options    json.RawMessage `json:"options"`
	IsRequired *bool           `json:"is_required"`
	Order      *int            `json:"order"`
	FactorID   *uint           `json:"factor"`
}

// POST /api/questions
func CreateQuestion(c *gin.Context) {
	var req questionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if len(req.Options) > 0 && !json.Valid(req.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "options is not valid JSON"})
		return
	}

	var survey models.Survey
	if err := config.DB.First(&survey, req.SurveyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Survey not found"})
		return
	}

	q := models.Question{
		SurveyID:   survey.ID,
		Text:       req.Text,
		Type:       req.Type,
		IsRequired: true,
		FactorID:   req.FactorID,
	}
	if len(req.Options) > 0 {
		q.Options = datatypes.JSON(req.Options)
	}
	if req.IsRequired != nil {
		q.IsRequired = *req.IsRequired
	}
	if req.Order != nil {
		q.Order = *req.Order
	} else {
		// Next slot = MAX(sort_order)+1 for this survey.
		type nextRes struct{ Next int }
		var r nextRes
		_ = config.DB.Model(&models.Question{}).
			Where("survey_id = ?", survey.ID).
			Select("COALESCE(MAX(sort_order), -1) + 1 AS next").
			Scan(&r).Error
		q.Order = r.Next
	}

	if err := config.DB.Create(&q).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create question"})
		return
	}
	c.JSON(http.StatusCreated, q)
}

// GET /api/questions?survey_id=N — always ordered by position.
func ListQuestions(c *gin.Context) {
	query := config.DB.Model(&models.Question{}).Order("sort_order")
	if sid := c.Query("survey_id"); sid != "" {
		id, err := strconv.Atoi(sid)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid survey_id"})
			return
		}
		query = query.Where("survey_id = ?", id)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GET /api/questions/:id
func GetQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var q models.Question
	if err := config.DB.Preload("Factor").First(&q, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Question not found"})
		return
	}
	c.JSON(http.StatusOK, q)
}

type updateQuestionReq struct {
	Text       *string          `json:"text"`
	Type       *string          `json:"type" binding:"omitempty,oneof=TEXT TEXTAREA RADIO CHECKBOX DROPDOWN RATING"`
	Options    *json.RawMessage `json:"options"`
	IsRequired *bool            `json:"is_required"`
	Order      *int             `json:"order"`
	FactorID   *uint            `json:"factor"`
}

// PUT /api/questions/:id
func UpdateQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var q models.Question
	if err := config.DB.First(&q, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Question not found"})
		return
	}

	var req updateQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if req.Options != nil && len(*req.Options) > 0 && !json.Valid(*req.Options) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "options is not valid JSON"})
		return
	}

	updates := map[string]interface{}{}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Options != nil {
		updates["options"] = datatypes.JSON(*req.Options)
	}
	if req.IsRequired != nil {
		updates["is_required"] = *req.IsRequired
	}
	if req.Order != nil {
		updates["sort_order"] = *req.Order
	}
	if req.FactorID != nil {
		updates["factor_id"] = *req.FactorID
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&q).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, q)
}

// DELETE /api/questions/:id
func DeleteQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var q models.Question
	if err := config.DB.First(&q, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Question not found"})
		return
	}
	if err := config.DB.Delete(&q).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
