package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/models"
	"github.com/ndtoan/hr-survey-server/routes"
	"github.com/ndtoan/hr-survey-server/utils"
)

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A pooled :memory: connection is its own database; keep one connection.
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func seedUser(t *testing.T, email, role string, deptID *uint) models.User {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		DepartmentID: deptID,
		IsActive:     true,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func seedEmployee(t *testing.T, u models.User) models.Employee {
	t.Helper()
	e := models.Employee{
		UserID:       u.ID,
		Position:     "Analyst",
		HireDate:     time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
		TurnoverRisk: models.RiskLow,
	}
	if err := config.DB.Create(&e).Error; err != nil {
		t.Fatalf("seed employee for %s: %v", u.Email, err)
	}
	return e
}

func seedDepartment(t *testing.T, name string) models.Department {
	t.Helper()
	d := models.Department{Name: name, IsActive: true}
	if err := config.DB.Create(&d).Error; err != nil {
		t.Fatalf("seed department %s: %v", name, err)
	}
	return d
}

func seedSurvey(t *testing.T, creator models.User, title string) models.Survey {
	t.Helper()
	s := models.Survey{
		Title:       title,
		Category:    models.CategoryMidContract,
		CreatedByID: creator.ID,
		IsActive:    true,
	}
	if err := config.DB.Create(&s).Error; err != nil {
		t.Fatalf("seed survey %s: %v", title, err)
	}
	return s
}

func seedQuestion(t *testing.T, survey models.Survey, text, qtype string, options []string, order int) models.Question {
	t.Helper()
	q := models.Question{
		SurveyID:   survey.ID,
		Text:       text,
		Type:       qtype,
		IsRequired: true,
		Order:      order,
	}
	if options != nil {
		b, err := json.Marshal(options)
		if err != nil {
			t.Fatalf("marshal options: %v", err)
		}
		q.Options = b
	}
	if err := config.DB.Create(&q).Error; err != nil {
		t.Fatalf("seed question %q: %v", text, err)
	}
	return q
}

func seedAssignment(t *testing.T, survey models.Survey, emp models.Employee, assignedBy models.User) models.SurveyAssignment {
	t.Helper()
	a := models.SurveyAssignment{
		SurveyID:     survey.ID,
		EmployeeID:   emp.ID,
		AssignedByID: &assignedBy.ID,
	}
	if err := config.DB.Create(&a).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	return a
}

func seedTraining(t *testing.T, creator models.User, title string) models.Training {
	t.Helper()
	tr := models.Training{
		Title:       title,
		CreatedByID: creator.ID,
		IsActive:    true,
	}
	if err := config.DB.Create(&tr).Error; err != nil {
		t.Fatalf("seed training %s: %v", title, err)
	}
	return tr
}

func seedTrainingAssignment(t *testing.T, training models.Training, emp models.Employee, assignedBy models.User) models.TrainingAssignment {
	t.Helper()
	a := models.TrainingAssignment{
		TrainingID:   training.ID,
		EmployeeID:   emp.ID,
		AssignedByID: &assignedBy.ID,
	}
	if err := config.DB.Create(&a).Error; err != nil {
		t.Fatalf("seed training assignment: %v", err)
	}
	return a
}

func tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := utils.GenerateToken(strconv.FormatUint(uint64(u.ID), 10), u.Role)
	if err != nil {
		t.Fatalf("token for %s: %v", u.Email, err)
	}
	return tok
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list (%s): %v", w.Body.String(), err)
	}
	return out
}

func submitPath(surveyID uint) string {
	return fmt.Sprintf("/api/surveys/%d/submit", surveyID)
}
