// Package policy holds the role capability rules in one place. Every handler
// that mutates data goes through Allow before touching the database; row
// visibility on reads is handled separately by the query scopes in the
// controllers.
package policy

import "github.com/ndtoan/hr-survey-server/models"

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Entity string

const (
	EntityDepartment         Entity = "department"
	EntityFactor             Entity = "factor"
	EntitySurvey             Entity = "survey"
	EntityQuestion           Entity = "question"
	EntityAssignment         Entity = "survey_assignment"
	EntityResponse           Entity = "survey_response"
	EntityTraining           Entity = "training"
	EntityTrainingAssignment Entity = "training_assignment"
	EntityEmployee           Entity = "employee"
	EntityAccount            Entity = "account"
	EntityExport             Entity = "export"
)

// Allow decides whether the caller may perform action on entity. The rules
// are fixed per role, not configurable per instance.
func Allow(u models.User, action Action, entity Entity) bool {
	switch entity {
	case EntityAccount:
		// Account administration is admin territory regardless of verb.
		return u.IsAdmin()
	case EntityEmployee, EntityExport:
		return u.IsAdmin() || u.IsHROfficer()
	}
	if action == ActionRead {
		// Any authenticated caller may read; list results are still scoped.
		return true
	}
	return u.IsAdmin() || u.IsHROfficer()
}
