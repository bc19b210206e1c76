package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/middleware"
	"github.com/ndtoan/hr-survey-server/models"
)

type exportReq struct {
	Format    string  `json:"format"`
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// POST /api/surveys/:id/export
func CreateExport(c *gin.Context) {
	u := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var survey models.Survey
	if err := config.DB.First(&survey, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "DB error"})
		return
	}

	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}

	var fromPtr, toPtr *time.Time
	if req.RangeFrom != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeFrom); err == nil {
			fromPtr = &t
		}
	}
	if req.RangeTo != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeTo); err == nil {
			toPtr = &t
		}
	}

	jobID := uuid.New().String()
	job := models.ExportJob{
		JobID:       jobID,
		SurveyID:    survey.ID,
		Format:      req.Format,
		RangeFrom:   fromPtr,
		RangeTo:     toPtr,
		Status:      "queued",
		RequestedBy: u.ID,
	}
	if err := config.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not queue export"})
		return
	}

	go processExportJob(jobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": "queued",
	})
}

// GET /api/exports/:job_id
func GetExport(c *gin.Context) {
	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "DB error"})
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

// processExportJob writes one CSV row per stored response for the survey.
func processExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		return
	}
	config.DB.Model(&job).Update("status", "processing")

	outDir := os.Getenv("EXPORT_DIR")
	if outDir == "" {
		outDir = "./exports"
	}
	os.MkdirAll(outDir, 0755)

	filename := fmt.Sprintf("export_%s.csv", job.JobID)
	outPath := path.Join(outDir, filename)

	f, err := os.Create(outPath)
	if err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"response_id", "assignment_id", "employee_email", "question_id", "question", "answer", "submitted_at"}
	w.Write(header)

	var responses []models.SurveyResponse
	q := config.DB.
		Select("survey_responses.*").
		Preload("Question").
		Preload("Assignment.Employee.User").
		Joins("JOIN survey_assignments ON survey_assignments.id = survey_responses.assignment_id").
		Where("survey_assignments.survey_id = ?", job.SurveyID)
	if job.RangeFrom != nil {
		q = q.Where("survey_responses.submitted_at >= ?", job.RangeFrom)
	}
	if job.RangeTo != nil {
		q = q.Where("survey_responses.submitted_at <= ?", job.RangeTo)
	}
	if err := q.Find(&responses).Error; err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}

	for _, r := range responses {
		email := ""
		if r.Assignment != nil && r.Assignment.Employee != nil && r.Assignment.Employee.User != nil {
			email = r.Assignment.Employee.User.Email
		}
		questionText := ""
		if r.Question != nil {
			questionText = r.Question.Text
		}
		row := []string{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.AssignmentID),
			email,
			fmt.Sprintf("%d", r.QuestionID),
			questionText,
			string(r.Answer),
			r.SubmittedAt.Format(time.RFC3339),
		}
		w.Write(row)
	}

	// Write errors surface on the buffered writer, not per call.
	w.Flush()
	if err := w.Error(); err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}

	fp := outPath
	config.DB.Model(&job).Updates(map[string]interface{}{"status": "done", "file_path": fp})
}
