package validation

import "regexp"

// Shared fragments for assessment job variables.

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmail is a shape check only. Deliverability is the mail provider's problem.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

// AnswerProperty accepts a single value or a list of values.
func AnswerProperty() Property {
	return Property{
		Type:  []string{"string", "array"},
		Items: &Property{Type: "string"},
	}
}

// ResponsesProperty is the respondent's answer map keyed by question id. The
// ids in singleValued must hold a string, not a list.
func ResponsesProperty(singleValued ...string) Property {
	answer := AnswerProperty()
	p := Property{
		Type:                 "object",
		Description:          "answers keyed by question id",
		AdditionalProperties: &answer,
	}
	if len(singleValued) > 0 {
		p.Properties = make(map[string]Property, len(singleValued))
		for _, id := range singleValued {
			p.Properties[id] = Property{Type: "string"}
		}
	}
	return p
}

func SessionIDProperty() Property {
	return Property{
		Type:      "string",
		MinLength: intPtr(1),
		MaxLength: intPtr(128),
	}
}

// StepProperty is a 1-based step number. Zero is tolerated and treated as the
// first step by the flow.
func StepProperty() Property {
	return Property{
		Type:    "integer",
		Minimum: floatPtr(0),
	}
}
