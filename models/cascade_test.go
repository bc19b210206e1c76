package models

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&Department{}, &User{}, &Employee{}, &Factor{},
		&Survey{}, &Question{}, &SurveyAssignment{}, &SurveyResponse{},
		&Training{}, &TrainingAssignment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedGraph(t *testing.T, db *gorm.DB) (User, Employee, Survey, Question, SurveyAssignment) {
	t.Helper()
	creator := User{Email: "hr@corp.test", PasswordHash: "x", Role: RoleHR, IsActive: true}
	if err := db.Create(&creator).Error; err != nil {
		t.Fatalf("seed creator: %v", err)
	}
	worker := User{Email: "worker@corp.test", PasswordHash: "x", Role: RoleEmployee, IsActive: true}
	if err := db.Create(&worker).Error; err != nil {
		t.Fatalf("seed worker: %v", err)
	}
	emp := Employee{UserID: worker.ID, Position: "Analyst", HireDate: time.Now(), IsActive: true, TurnoverRisk: RiskLow}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	survey := Survey{Title: "Pulse", Category: CategoryMidContract, CreatedByID: creator.ID, IsActive: true}
	if err := db.Create(&survey).Error; err != nil {
		t.Fatalf("seed survey: %v", err)
	}
	question := Question{SurveyID: survey.ID, Text: "Happy?", Type: QuestionText, IsRequired: true}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	assignment := SurveyAssignment{SurveyID: survey.ID, EmployeeID: emp.ID, AssignedByID: &creator.ID}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	resp := SurveyResponse{AssignmentID: assignment.ID, QuestionID: question.ID, Answer: []byte(`"ok"`), SubmittedAt: time.Now()}
	if err := db.Create(&resp).Error; err != nil {
		t.Fatalf("seed response: %v", err)
	}
	return creator, emp, survey, question, assignment
}

func TestSurveyDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	_, _, survey, _, _ := seedGraph(t, db)

	if err := db.Delete(&survey).Error; err != nil {
		t.Fatalf("delete survey: %v", err)
	}

	var questions, assignments, responses int64
	db.Model(&Question{}).Count(&questions)
	db.Model(&SurveyAssignment{}).Count(&assignments)
	db.Model(&SurveyResponse{}).Count(&responses)
	if questions != 0 || assignments != 0 || responses != 0 {
		t.Errorf("after survey delete: questions=%d assignments=%d responses=%d, all want 0",
			questions, assignments, responses)
	}
}

func TestFactorDeleteDetachesQuestions(t *testing.T) {
	db := openTestDB(t)
	creator, _, survey, _, _ := seedGraph(t, db)

	factor := Factor{Name: "Workload", Type: FactorTurnover, CreatedByID: &creator.ID}
	if err := db.Create(&factor).Error; err != nil {
		t.Fatalf("seed factor: %v", err)
	}
	tagged := Question{SurveyID: survey.ID, Text: "Overtime?", Type: QuestionText, FactorID: &factor.ID}
	if err := db.Create(&tagged).Error; err != nil {
		t.Fatalf("seed tagged question: %v", err)
	}

	if err := db.Delete(&factor).Error; err != nil {
		t.Fatalf("delete factor: %v", err)
	}

	var reloaded Question
	if err := db.First(&reloaded, tagged.ID).Error; err != nil {
		t.Fatalf("question must survive factor delete: %v", err)
	}
	if reloaded.FactorID != nil {
		t.Errorf("question factor_id = %v, want nil", *reloaded.FactorID)
	}
}

func TestAssignmentDeleteRemovesResponses(t *testing.T) {
	db := openTestDB(t)
	_, _, _, _, assignment := seedGraph(t, db)

	if err := db.Delete(&assignment).Error; err != nil {
		t.Fatalf("delete assignment: %v", err)
	}

	var responses int64
	db.Model(&SurveyResponse{}).Count(&responses)
	if responses != 0 {
		t.Errorf("responses after assignment delete = %d, want 0", responses)
	}
}

func TestUserDeleteAppliesPerRelationshipRules(t *testing.T) {
	db := openTestDB(t)
	creator, _, _, _, _ := seedGraph(t, db)

	factor := Factor{Name: "Pay", Type: FactorNonTurnover, CreatedByID: &creator.ID}
	if err := db.Create(&factor).Error; err != nil {
		t.Fatalf("seed factor: %v", err)
	}

	if err := db.Delete(&creator).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// Surveys the user created are gone, with their questions.
	var surveys, questions int64
	db.Model(&Survey{}).Count(&surveys)
	db.Model(&Question{}).Count(&questions)
	if surveys != 0 || questions != 0 {
		t.Errorf("after creator delete: surveys=%d questions=%d, want 0", surveys, questions)
	}

	// The factor survives with a cleared reference.
	var reloaded Factor
	if err := db.First(&reloaded, factor.ID).Error; err != nil {
		t.Fatalf("factor must survive creator delete: %v", err)
	}
	if reloaded.CreatedByID != nil {
		t.Errorf("factor created_by = %v, want nil", *reloaded.CreatedByID)
	}
}

func TestTrainingDeleteRemovesAssignments(t *testing.T) {
	db := openTestDB(t)
	creator, emp, _, _, _ := seedGraph(t, db)

	training := Training{Title: "Safety basics", CreatedByID: creator.ID, IsActive: true}
	if err := db.Create(&training).Error; err != nil {
		t.Fatalf("seed training: %v", err)
	}
	ta := TrainingAssignment{TrainingID: training.ID, EmployeeID: emp.ID, AssignedByID: &creator.ID}
	if err := db.Create(&ta).Error; err != nil {
		t.Fatalf("seed training assignment: %v", err)
	}

	if err := db.Delete(&training).Error; err != nil {
		t.Fatalf("delete training: %v", err)
	}

	var assignments int64
	db.Model(&TrainingAssignment{}).Count(&assignments)
	if assignments != 0 {
		t.Errorf("training assignments after delete = %d, want 0", assignments)
	}
}

func TestTrainingAssignmentUniquePerTrainingAndEmployee(t *testing.T) {
	db := openTestDB(t)
	creator, emp, _, _, _ := seedGraph(t, db)

	training := Training{Title: "Compliance", CreatedByID: creator.ID, IsActive: true}
	if err := db.Create(&training).Error; err != nil {
		t.Fatalf("seed training: %v", err)
	}
	first := TrainingAssignment{TrainingID: training.ID, EmployeeID: emp.ID, AssignedByID: &creator.ID}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("seed training assignment: %v", err)
	}

	dup := TrainingAssignment{TrainingID: training.ID, EmployeeID: emp.ID}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("duplicate (training, employee) assignment must violate the unique index")
	}
}

func TestAssignmentUniquePerSurveyAndEmployee(t *testing.T) {
	db := openTestDB(t)
	creator, emp, survey, _, _ := seedGraph(t, db)

	dup := SurveyAssignment{SurveyID: survey.ID, EmployeeID: emp.ID, AssignedByID: &creator.ID}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("duplicate (survey, employee) assignment must violate the unique index")
	}
}

func TestResponseUniquePerAssignmentAndQuestion(t *testing.T) {
	db := openTestDB(t)
	_, _, _, question, assignment := seedGraph(t, db)

	dup := SurveyResponse{AssignmentID: assignment.ID, QuestionID: question.ID, Answer: []byte(`"again"`), SubmittedAt: time.Now()}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("duplicate (assignment, question) response must violate the unique index")
	}
}
