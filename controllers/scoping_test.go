package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ndtoan/hr-survey-server/config"
	"github.com/ndtoan/hr-survey-server/models"
)

func TestEmployeeSeesOnlyPendingAssignedSurveys(t *testing.T) {
	r := setupTest(t)

	hr := seedUser(t, "hr@corp.test", models.RoleHR, nil)
	worker := seedUser(t, "worker@corp.test", models.RoleEmployee, nil)
	emp := seedEmployee(t, worker)

	assigned := seedSurvey(t, hr, "Assigned and pending")
	completed := seedSurvey(t, hr, "Assigned but done")
	seedSurvey(t, hr, "Never assigned")

	seedAssignment(t, assigned, emp, hr)
	done := seedAssignment(t, completed, emp, hr)
	now := time.Now()
	config.DB.Model(&done).Updates(map[string]interface{}{"is_completed": true, "completed_at": now})

	w := doRequest(t, r, http.MethodGet, "/api/surveys", tokenFor(t, worker), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	list := decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("employee sees %d surveys, want 1", len(list))
	}
	if title := list[0]["title"]; title != "Assigned and pending" {
		t.Errorf("visible survey = %v, want the pending one", title)
	}

	// Staff see everything.
	w = doRequest(t, r, http.MethodGet, "/api/surveys", tokenFor(t, hr), nil)
	if got := len(decodeList(t, w)); got != 3 {
		t.Errorf("HR sees %d surveys, want 3", got)
	}
}

func TestEmployeeSurveyRetrieveFollowsListScope(t *testing.T) {
	r := setupTest(t)

	hr := seedUser(t, "hr@corp.test", models.RoleHR, nil)
	worker := seedUser(t, "worker@corp.test", models.RoleEmployee, nil)
	emp := seedEmployee(t, worker)

	assigned := seedSurvey(t, hr, "Assigned and pending")
	hidden := seedSurvey(t, hr, "Never assigned")
	seedQuestion(t, hidden, "Planned layoffs ok?", models.QuestionText, nil, 0)
	assignment := seedAssignment(t, assigned, emp, hr)

	path := fmt.Sprintf("/api/surveys/%d", hidden.ID)
	w := doRequest(t, r, http.MethodGet, path, tokenFor(t, worker), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unassigned survey retrieve status = %d, want 404", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/surveys/%d", assigned.ID), tokenFor(t, worker), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("assigned survey retrieve status = %d, want 200", w.Code)
	}

	// Completing the assignment takes the survey out of scope again.
	now := time.Now()
	config.DB.Model(&assignment).Updates(map[string]interface{}{"is_completed": true, "completed_at": now})
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/surveys/%d", assigned.ID), tokenFor(t, worker), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("completed survey retrieve status = %d, want 404", w.Code)
	}

	// Staff are unrestricted.
	w = doRequest(t, r, http.MethodGet, path, tokenFor(t, hr), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("HR survey retrieve status = %d, want 200", w.Code)
	}
}

func TestHRAssignmentListScopedToDepartment(t *testing.T) {
	r := setupTest(t)

	sales := seedDepartment(t, "Sales")
	ops := seedDepartment(t, "Operations")

	admin := seedUser(t, "admin@corp.test", models.RoleAdmin, nil)
	hrSales := seedUser(t, "hr.sales@corp.test", models.RoleHR, &sales.ID)
	hrNoDept := seedUser(t, "hr.lost@corp.test", models.RoleHR, nil)

	salesWorker := seedUser(t, "sales.worker@corp.test", models.RoleEmployee, &sales.ID)
	opsWorker := seedUser(t, "ops.worker@corp.test", models.RoleEmployee, &ops.ID)
	salesEmp := seedEmployee(t, salesWorker)
	opsEmp := seedEmployee(t, opsWorker)

	survey := seedSurvey(t, admin, "Company pulse")
	seedAssignment(t, survey, salesEmp, admin)
	seedAssignment(t, survey, opsEmp, admin)

	w := doRequest(t, r, http.MethodGet, "/api/survey-assignments", tokenFor(t, admin), nil)
	if got := len(decodeList(t, w)); got != 2 {
		t.Errorf("admin sees %d assignments, want 2", got)
	}

	w = doRequest(t, r, http.MethodGet, "/api/survey-assignments", tokenFor(t, hrSales), nil)
	list := decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("sales HR sees %d assignments, want 1", len(list))
	}
	if got := uint(list[0]["employee"].(float64)); got != salesEmp.ID {
		t.Errorf("sales HR sees employee %d, want %d", got, salesEmp.ID)
	}

	// HR with no department matches nothing, by design.
	w = doRequest(t, r, http.MethodGet, "/api/survey-assignments", tokenFor(t, hrNoDept), nil)
	if got := len(decodeList(t, w)); got != 0 {
		t.Errorf("department-less HR sees %d assignments, want 0", got)
	}

	// Employees see only their own rows.
	w = doRequest(t, r, http.MethodGet, "/api/survey-assignments", tokenFor(t, opsWorker), nil)
	list = decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("employee sees %d assignments, want 1", len(list))
	}
	if got := uint(list[0]["employee"].(float64)); got != opsEmp.ID {
		t.Errorf("employee sees employee %d, want own %d", got, opsEmp.ID)
	}
}

func TestMyAssignmentsReturnsOnlyPending(t *testing.T) {
	r := setupTest(t)

	hr := seedUser(t, "hr@corp.test", models.RoleHR, nil)
	worker := seedUser(t, "worker@corp.test", models.RoleEmployee, nil)
	emp := seedEmployee(t, worker)

	pending := seedSurvey(t, hr, "Pending")
	finished := seedSurvey(t, hr, "Finished")
	seedAssignment(t, pending, emp, hr)
	done := seedAssignment(t, finished, emp, hr)
	now := time.Now()
	config.DB.Model(&done).Updates(map[string]interface{}{"is_completed": true, "completed_at": now})

	w := doRequest(t, r, http.MethodGet, "/api/survey-assignments/my_assignments", tokenFor(t, worker), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("my_assignments status = %d", w.Code)
	}
	list := decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("my_assignments returns %d rows, want 1", len(list))
	}
	if got := uint(list[0]["survey"].(float64)); got != pending.ID {
		t.Errorf("pending assignment survey = %d, want %d", got, pending.ID)
	}
}

func TestResponseListScopedThroughAssignment(t *testing.T) {
	r := setupTest(t)

	sales := seedDepartment(t, "Sales")
	ops := seedDepartment(t, "Operations")

	admin := seedUser(t, "admin@corp.test", models.RoleAdmin, nil)
	hrSales := seedUser(t, "hr.sales@corp.test", models.RoleHR, &sales.ID)

	salesWorker := seedUser(t, "sales.worker@corp.test", models.RoleEmployee, &sales.ID)
	opsWorker := seedUser(t, "ops.worker@corp.test", models.RoleEmployee, &ops.ID)
	salesEmp := seedEmployee(t, salesWorker)
	opsEmp := seedEmployee(t, opsWorker)

	survey := seedSurvey(t, admin, "Company pulse")
	q := seedQuestion(t, survey, "Happy?", models.QuestionText, nil, 0)
	salesAssignment := seedAssignment(t, survey, salesEmp, admin)
	opsAssignment := seedAssignment(t, survey, opsEmp, admin)

	for _, a := range []models.SurveyAssignment{salesAssignment, opsAssignment} {
		resp := models.SurveyResponse{
			AssignmentID: a.ID,
			QuestionID:   q.ID,
			Answer:       []byte(`"fine"`),
			SubmittedAt:  time.Now(),
		}
		if err := config.DB.Create(&resp).Error; err != nil {
			t.Fatalf("seed response: %v", err)
		}
	}

	w := doRequest(t, r, http.MethodGet, "/api/survey-responses", tokenFor(t, admin), nil)
	if got := len(decodeList(t, w)); got != 2 {
		t.Errorf("admin sees %d responses, want 2", got)
	}

	w = doRequest(t, r, http.MethodGet, "/api/survey-responses", tokenFor(t, hrSales), nil)
	list := decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("sales HR sees %d responses, want 1", len(list))
	}
	if got := uint(list[0]["assignment"].(float64)); got != salesAssignment.ID {
		t.Errorf("sales HR sees assignment %d, want %d", got, salesAssignment.ID)
	}

	w = doRequest(t, r, http.MethodGet, "/api/survey-responses", tokenFor(t, opsWorker), nil)
	list = decodeList(t, w)
	if len(list) != 1 {
		t.Fatalf("employee sees %d responses, want 1", len(list))
	}
	if got := uint(list[0]["assignment"].(float64)); got != opsAssignment.ID {
		t.Errorf("employee sees assignment %d, want own %d", got, opsAssignment.ID)
	}
}

func TestQuestionListFilteredAndOrdered(t *testing.T) {
	r := setupTest(t)

	hr := seedUser(t, "hr@corp.test", models.RoleHR, nil)
	s1 := seedSurvey(t, hr, "One")
	s2 := seedSurvey(t, hr, "Two")
	seedQuestion(t, s1, "B", models.QuestionText, nil, 1)
	seedQuestion(t, s1, "A", models.QuestionText, nil, 0)
	seedQuestion(t, s2, "Other", models.QuestionText, nil, 0)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/questions?survey_id=%d", s1.ID), tokenFor(t, hr), nil)
	list := decodeList(t, w)
	if len(list) != 2 {
		t.Fatalf("filtered questions = %d, want 2", len(list))
	}
	if list[0]["text"] != "A" || list[1]["text"] != "B" {
		t.Errorf("questions out of order: %v then %v", list[0]["text"], list[1]["text"])
	}
}
