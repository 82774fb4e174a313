// internal/assessment/eligibility/scorer.go
package eligibility

import (
	"fmt"
	"strings"

	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/models"
)

// Point weights.
const (
	conditionPoints           = 25
	durationPoints            = 15
	severeSymptomPoints       = 20
	mildSymptomPoints         = 10
	treatmentHistoryPoints    = 20
	inadequateResponsePoints  = 15
	significantSideEffectPts  = 5
	minChronicDurationMonths  = 3
	moderateSeverityThreshold = 5
	mildSeverityThreshold     = 3
)

// Status thresholds.
const (
	HighlyLikelyThreshold = 80
	LikelyThreshold       = 60
	PossibleThreshold     = 40
)

var durationMonths = map[string]int{
	"under-6-months": 3,
	"6-12-months":    9,
	"1-2-years":      18,
	"2-5-years":      42,
	"5-10-years":     90,
	"over-10-years":  120,
}

var durationLabels = map[string]string{
	"under-6-months": "less than 6 months",
	"6-12-months":    "6-12 months",
	"1-2-years":      "1-2 years",
	"2-5-years":      "2-5 years",
	"5-10-years":     "5-10 years",
	"over-10-years":  "over 10 years",
}

var conditionNames = map[string]string{
	"chronic-pain":       "Chronic Pain",
	"anxiety":            "Anxiety",
	"depression":         "Depression",
	"ptsd":               "PTSD",
	"insomnia":           "Insomnia",
	"epilepsy":           "Epilepsy",
	"multiple-sclerosis": "Multiple Sclerosis",
	"ibd":                "IBD",
	"tourette":           "Tourette Syndrome",
	"cancer":             "Cancer Side Effects",
	"fibromyalgia":       "Fibromyalgia",
	"arthritis":          "Arthritis",
	"other-neurological": "Neurological Condition",
	"other":              "Qualifying Condition",
}

var inadequateResponses = map[string]bool{
	"minimal":        true,
	"nothing-worked": true,
	"worse":          true,
	"side-effects":   true,
}

var significantSideEffects = map[string]bool{
	"moderate":             true,
	"severe":               true,
	"worse-than-condition": true,
}

var recommendedActions = map[models.EligibilityStatus][]string{
	models.StatusHighlyLikely: {
		"Book a consultation with a specialist clinic as soon as possible",
		"Gather your medical records and treatment history",
		"Prepare a list of current medications and previous treatments",
		"Consider which consultation format works best for you",
	},
	models.StatusLikely: {
		"Schedule a consultation to discuss your eligibility in detail",
		"Collect documentation of your condition and treatment history",
		"Research clinics specializing in your condition",
		"Prepare questions about treatment options and costs",
	},
	models.StatusPossible: {
		"Continue with conventional treatments as advised by your doctor",
		"Keep detailed records of treatment effectiveness and side effects",
		"Consider consultation if conventional treatments remain inadequate",
		"Monitor your symptoms and document their impact on daily life",
	},
	models.StatusEducational: {
		"Focus on conventional treatment options with your healthcare provider",
		"Maintain detailed records of your symptoms and treatments",
		"Revisit medical cannabis as an option if other treatments prove inadequate",
		"Stay informed about evolving UK medical cannabis regulations",
	},
}

// Score computes the eligibility verdict for a set of responses. Missing answers
// contribute no points, so incomplete input degrades towards "educational".
func Score(responses models.AssessmentResponses) models.EligibilityScore {
	points := 0
	reasoning := make([]string, 0, 5)

	condition := strings.TrimSpace(responses.Get(questionnaire.QuestionCondition))
	if condition != "" && condition != "none" {
		points += conditionPoints
		reasoning = append(reasoning, fmt.Sprintf("You have a qualifying condition (%s)", ConditionName(condition)))
	}

	duration := responses.Get(questionnaire.QuestionDuration)
	if durationMonths[duration] >= minChronicDurationMonths {
		points += durationPoints
		reasoning = append(reasoning, fmt.Sprintf("Condition duration of %s shows established chronic nature", DurationLabel(duration)))
	} else {
		reasoning = append(reasoning, "Recent onset - some clinics may want to see longer treatment history")
	}

	severity := questionnaire.ParseScale(responses.Get(questionnaire.QuestionSeverity))
	switch {
	case severity >= moderateSeverityThreshold:
		points += severeSymptomPoints
		reasoning = append(reasoning, fmt.Sprintf("Moderate to severe symptom severity (%d/10) demonstrates significant impact", severity))
	case severity >= mildSeverityThreshold:
		points += mildSymptomPoints
		reasoning = append(reasoning, "Mild to moderate symptoms showing noticeable impact")
	}

	if HasTreatmentHistory(responses) {
		points += treatmentHistoryPoints
		reasoning = append(reasoning, "Previous conventional treatment experience supports eligibility")

		if inadequateResponses[responses.Get(questionnaire.QuestionTreatmentEffectiveness)] {
			points += inadequateResponsePoints
			reasoning = append(reasoning, "Inadequate response to conventional treatments is a key eligibility criterion")
		}
		if significantSideEffects[responses.Get(questionnaire.QuestionSideEffects)] {
			points += significantSideEffectPts
			reasoning = append(reasoning, "Significant side effects from previous treatments support alternative therapy consideration")
		}
	} else {
		reasoning = append(reasoning, "No previous treatment history - clinics typically require evidence of conventional treatment attempts first")
	}

	confidence := clamp(points, 0, 100)
	status := StatusFor(confidence)

	return models.EligibilityScore{
		Status:             status,
		Confidence:         confidence,
		Reasoning:          reasoning,
		RecommendedActions: RecommendedActions(status),
	}
}

// StatusFor buckets a confidence value into an eligibility status.
func StatusFor(confidence int) models.EligibilityStatus {
	switch {
	case confidence >= HighlyLikelyThreshold:
		return models.StatusHighlyLikely
	case confidence >= LikelyThreshold:
		return models.StatusLikely
	case confidence >= PossibleThreshold:
		return models.StatusPossible
	default:
		return models.StatusEducational
	}
}

// RecommendedActions returns a copy of the fixed action list for status.
func RecommendedActions(status models.EligibilityStatus) []string {
	src, ok := recommendedActions[status]
	if !ok {
		src = recommendedActions[models.StatusEducational]
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// HasTreatmentHistory treats a missing treatment-status the same as "no-treatment".
func HasTreatmentHistory(responses models.AssessmentResponses) bool {
	status := strings.TrimSpace(responses.Get(questionnaire.QuestionTreatmentStatus))
	return status != "" && status != questionnaire.TreatmentStatusNone
}

func ConditionName(condition string) string {
	if name, ok := conditionNames[condition]; ok {
		return name
	}
	return condition
}

func DurationLabel(duration string) string {
	if label, ok := durationLabels[duration]; ok {
		return label
	}
	return duration
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
