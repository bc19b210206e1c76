package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/ndtoan/hr-survey-server/models"
)

// ValidateAnswer checks a raw answer against the question's declared type.
// TEXT/TEXTAREA expect a string, RADIO/DROPDOWN a string drawn from the
// question's options, CHECKBOX an array of such strings, RATING a number.
func ValidateAnswer(q models.Question, raw json.RawMessage) error {
	switch q.Type {
	case models.QuestionText, models.QuestionTextarea:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("answer for question %d must be a string", q.ID)
		}

	case models.QuestionRadio, models.QuestionDropdown:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("answer for question %d must be a string", q.ID)
		}
		if opts, ok := questionOptions(q); ok && !contains(opts, s) {
			return fmt.Errorf("answer for question %d is not one of its options", q.ID)
		}

	case models.QuestionCheckbox:
		var vals []string
		if err := json.Unmarshal(raw, &vals); err != nil {
			return fmt.Errorf("answer for question %d must be an array of strings", q.ID)
		}
		if opts, ok := questionOptions(q); ok {
			for _, v := range vals {
				if !contains(opts, v) {
					return fmt.Errorf("answer for question %d contains a value outside its options", q.ID)
				}
			}
		}

	case models.QuestionRating:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("answer for question %d must be a number", q.ID)
		}

	default:
		return fmt.Errorf("question %d has unknown type %q", q.ID, q.Type)
	}
	return nil
}

// questionOptions decodes the stored options list. A question with no usable
// options list skips the membership check rather than rejecting everything.
func questionOptions(q models.Question) ([]string, bool) {
	if len(q.Options) == 0 {
		return nil, false
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, false
	}
	return opts, len(opts) > 0
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
