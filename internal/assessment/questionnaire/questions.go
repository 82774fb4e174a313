// internal/assessment/questionnaire/questions.go
package questionnaire

import (
	"strings"

	"eligibility-workers/internal/models"
)

// Question ids referenced by the scorer, matcher and skip rules.
const (
	QuestionCondition              = "condition"
	QuestionDuration               = "duration"
	QuestionSeverity               = "severity"
	QuestionTreatmentStatus        = "treatment-status"
	QuestionPreviousTreatments     = "previous-treatments"
	QuestionTreatmentEffectiveness = "treatment-effectiveness"
	QuestionSideEffects            = "side-effects"
	QuestionMedicationConcerns     = "medication-concerns"
	QuestionLifestyleImpact        = "lifestyle-impact"
	QuestionWorkSituation          = "work-situation"
	QuestionTreatmentGoals         = "treatment-goals"
	QuestionConsultationPreference = "consultation-preference"
	QuestionBudget                 = "budget"
	QuestionTimeline               = "timeline"
	QuestionInformationSource      = "information-source"
)

// TreatmentStatusNone is the treatment-status answer meaning no conventional treatment.
const TreatmentStatusNone = "no-treatment"

var skipWithoutTreatment = []models.Predicate{
	{Field: QuestionTreatmentStatus, Operator: models.OpEquals, Value: TreatmentStatusNone},
}

// ParseScale reads the leading integer of a scale answer, so "7.5" is 7 and
// "8/10" is 8. Anything without leading digits is 0.
func ParseScale(raw string) int {
	s := strings.TrimSpace(raw)
	sign := 1
	if s != "" && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1000 {
			break
		}
	}
	return sign * n
}

// Questions returns a fresh copy of the eligibility question set.
func Questions() []models.Question {
	out := make([]models.Question, len(eligibilityQuestions))
	for i, q := range eligibilityQuestions {
		q.Options = append([]models.Option(nil), q.Options...)
		q.SkipWhen = append([]models.Predicate(nil), q.SkipWhen...)
		out[i] = q
	}
	return out
}

var eligibilityQuestions = []models.Question{
	{
		ID:       QuestionCondition,
		Prompt:   "Which condition are you seeking treatment for?",
		Type:     models.QuestionTypeVisualCards,
		Required: true,
		Options: []models.Option{
			{Value: "chronic-pain", Label: "Chronic Pain", Description: "Back pain, arthritis, fibromyalgia, neuropathic pain", Icon: "activity"},
			{Value: "anxiety", Label: "Anxiety", Description: "Generalized anxiety, panic attacks, social anxiety", Icon: "heart"},
			{Value: "depression", Label: "Depression", Description: "Major depressive disorder, persistent low mood", Icon: "cloud-rain"},
			{Value: "ptsd", Label: "PTSD", Description: "Post-traumatic stress disorder", Icon: "alert-circle"},
			{Value: "insomnia", Label: "Insomnia", Description: "Sleep disorders, difficulty sleeping", Icon: "moon"},
			{Value: "epilepsy", Label: "Epilepsy", Description: "Seizures, treatment-resistant epilepsy", Icon: "zap"},
			{Value: "multiple-sclerosis", Label: "Multiple Sclerosis", Description: "MS symptoms, spasticity, pain", Icon: "brain"},
			{Value: "ibd", Label: "IBD", Description: "Crohn's disease, ulcerative colitis", Icon: "activity"},
			{Value: "tourette", Label: "Tourette Syndrome", Description: "Tic disorders", Icon: "user"},
			{Value: "cancer", Label: "Cancer Side Effects", Description: "Chemotherapy side effects, pain management", Icon: "shield"},
			{Value: "fibromyalgia", Label: "Fibromyalgia", Description: "Widespread pain, fatigue", Icon: "compass"},
			{Value: "arthritis", Label: "Arthritis", Description: "Joint pain and inflammation", Icon: "bone"},
			{Value: "other-neurological", Label: "Other Neurological", Description: "Parkinson's, dystonia, other conditions", Icon: "cpu"},
			{Value: "other", Label: "Other Qualifying", Description: "Other condition not listed", Icon: "more-horizontal"},
		},
	},
	{
		ID:       QuestionDuration,
		Prompt:   "How long have you been experiencing this condition?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		Options: []models.Option{
			{Value: "under-6-months", Label: "Less than 6 months", Description: "Recent onset"},
			{Value: "6-12-months", Label: "6 months - 1 year", Description: "Developing condition"},
			{Value: "1-2-years", Label: "1-2 years", Description: "Established condition"},
			{Value: "2-5-years", Label: "2-5 years", Description: "Long-term condition"},
			{Value: "5-10-years", Label: "5-10 years", Description: "Chronic condition"},
			{Value: "over-10-years", Label: "More than 10 years", Description: "Long-standing condition"},
		},
	},
	{
		ID:       QuestionSeverity,
		Prompt:   "How would you rate the severity of your symptoms?",
		Type:     models.QuestionTypeScale,
		Required: true,
		Options: []models.Option{
			{Value: "1", Label: "1 - Minimal", Description: "Barely noticeable"},
			{Value: "2", Label: "2", Description: "Very mild"},
			{Value: "3", Label: "3 - Mild", Description: "Noticeable but manageable"},
			{Value: "4", Label: "4", Description: "Mild to moderate"},
			{Value: "5", Label: "5", Description: "Moderate discomfort"},
			{Value: "6", Label: "6 - Moderate", Description: "Significant discomfort, some daily impact"},
			{Value: "7", Label: "7", Description: "Moderate to severe"},
			{Value: "8", Label: "8 - Severe", Description: "Major daily life impact"},
			{Value: "9", Label: "9", Description: "Very severe"},
			{Value: "10", Label: "10 - Debilitating", Description: "Unable to function normally"},
		},
	},
	{
		ID:       QuestionTreatmentStatus,
		Prompt:   "What is your current treatment status?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		Options: []models.Option{
			{Value: TreatmentStatusNone, Label: "Not receiving any treatment", Description: "Currently untreated"},
			{Value: "nhs-inadequate", Label: "NHS treatment but inadequate relief", Description: "Current NHS care insufficient"},
			{Value: "private-inadequate", Label: "Private treatment but inadequate relief", Description: "Private care not working"},
			{Value: "multiple-failed", Label: "Multiple treatments with little success", Description: "Tried many options"},
			{Value: "side-effects", Label: "Current medication with significant side effects", Description: "Treatment causing problems"},
			{Value: "between-treatments", Label: "Between treatments, seeking alternatives", Description: "Looking for new options"},
		},
	},
	{
		// Options are resolved from the condition answer when the question is fetched.
		ID:       QuestionPreviousTreatments,
		Prompt:   "Which treatments have you previously tried?",
		Type:     models.QuestionTypeMultiple,
		Required: true,
		SkipWhen: skipWithoutTreatment,
	},
	{
		ID:       QuestionTreatmentEffectiveness,
		Prompt:   "How effective were these previous treatments?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		SkipWhen: skipWithoutTreatment,
		Options: []models.Option{
			{Value: "initially-effective", Label: "Very effective initially, but decreased over time", Description: "Lost effectiveness"},
			{Value: "somewhat-effective", Label: "Somewhat effective but insufficient relief", Description: "Partial benefit only"},
			{Value: "minimal", Label: "Minimal effectiveness, little improvement", Description: "Limited benefit"},
			{Value: "side-effects", Label: "Effective but unacceptable side effects", Description: "Side effects too severe"},
			{Value: "worse", Label: "Made symptoms worse", Description: "Negative reaction"},
			{Value: "nothing-worked", Label: "Nothing has worked", Description: "No benefit from any treatment"},
		},
	},
	{
		ID:       QuestionSideEffects,
		Prompt:   "Have you experienced side effects from previous treatments?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		SkipWhen: skipWithoutTreatment,
		Options: []models.Option{
			{Value: "none", Label: "No significant side effects", Description: "Well tolerated"},
			{Value: "mild", Label: "Mild, manageable side effects", Description: "Minor issues only"},
			{Value: "moderate", Label: "Moderate side effects affecting daily life", Description: "Noticeable impact"},
			{Value: "severe", Label: "Severe side effects requiring treatment stoppage", Description: "Had to stop treatment"},
			{Value: "worse-than-condition", Label: "Side effects worse than original condition", Description: "Treatment worse than illness"},
		},
	},
	{
		ID:       QuestionMedicationConcerns,
		Prompt:   "What concerns do you have about your current medications?",
		Type:     models.QuestionTypeMultiple,
		Required: true,
		Options: []models.Option{
			{Value: "not-effective", Label: "Not effective enough", Description: "Insufficient symptom relief"},
			{Value: "side-effects", Label: "Too many side effects", Description: "Causing other problems"},
			{Value: "dependency", Label: "Dependency/addiction concerns", Description: "Worried about dependence"},
			{Value: "cost", Label: "Cost of medications", Description: "Too expensive"},
			{Value: "interactions", Label: "Drug interactions", Description: "Conflicts with other meds"},
			{Value: "long-term-effects", Label: "Long-term health effects", Description: "Worried about future impact"},
			{Value: "no-concerns", Label: "No concerns", Description: "Satisfied with current treatment"},
			{Value: "not-taking", Label: "Not taking medications", Description: "Currently not medicated"},
		},
	},
	{
		ID:       QuestionLifestyleImpact,
		Prompt:   "How does your condition impact your daily life?",
		Type:     models.QuestionTypeMultiple,
		Required: true,
		Options: []models.Option{
			{Value: "sleep", Label: "Sleep difficulties", Description: "Trouble sleeping or poor quality sleep"},
			{Value: "work-study", Label: "Work/study concentration problems", Description: "Difficulty focusing or performing"},
			{Value: "physical-activity", Label: "Reduced physical activity", Description: "Can't exercise or move normally"},
			{Value: "social", Label: "Relationship/social impact", Description: "Affects relationships and social life"},
			{Value: "household", Label: "Household task difficulties", Description: "Struggle with daily chores"},
			{Value: "appetite", Label: "Appetite/eating issues", Description: "Changes in eating patterns"},
			{Value: "mood", Label: "Mood changes", Description: "Emotional ups and downs"},
			{Value: "financial", Label: "Financial impact", Description: "Medical costs or lost income"},
			{Value: "help-needed", Label: "Need help with daily activities", Description: "Require assistance from others"},
			{Value: "minimal", Label: "Minimal impact", Description: "Life relatively unaffected"},
		},
	},
	{
		ID:       QuestionWorkSituation,
		Prompt:   "What is your current work situation?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		Options: []models.Option{
			{Value: "full-time", Label: "Full-time employed", Description: "35+ hours per week"},
			{Value: "part-time", Label: "Part-time employed", Description: "Less than 35 hours per week"},
			{Value: "self-employed", Label: "Self-employed", Description: "Running own business"},
			{Value: "unable-work", Label: "Unable to work due to condition", Description: "Condition prevents employment"},
			{Value: "retired", Label: "Retired", Description: "No longer working"},
			{Value: "student", Label: "Student", Description: "In education"},
			{Value: "unemployed", Label: "Unemployed (not condition-related)", Description: "Not working for other reasons"},
		},
	},
	{
		ID:       QuestionTreatmentGoals,
		Prompt:   "What are your primary treatment goals?",
		Type:     models.QuestionTypeMultiple,
		Required: true,
		Options: []models.Option{
			{Value: "complete-relief", Label: "Complete symptom relief", Description: "Eliminate all symptoms"},
			{Value: "significant-reduction", Label: "Significant symptom reduction", Description: "Major improvement"},
			{Value: "better-sleep", Label: "Better sleep quality", Description: "Improve rest and recovery"},
			{Value: "reduced-medication", Label: "Reduced medication reliance", Description: "Take fewer medications"},
			{Value: "quality-of-life", Label: "Improved quality of life", Description: "Better overall wellbeing"},
			{Value: "return-activities", Label: "Return to normal activities", Description: "Resume regular life"},
			{Value: "pain-management", Label: "Pain management for activities", Description: "Enable movement and exercise"},
			{Value: "mood-stabilization", Label: "Mood stabilization", Description: "Emotional balance"},
		},
	},
	{
		ID:       QuestionConsultationPreference,
		Prompt:   "What is your preferred consultation format?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		Options: []models.Option{
			{Value: "in-person", Label: "In-person at clinic", Description: "Face-to-face appointment"},
			{Value: "video", Label: "Video consultation", Description: "Online video call"},
			{Value: "phone", Label: "Phone consultation", Description: "Telephone appointment"},
			{Value: "no-preference", Label: "No preference (fastest)", Description: "Whatever is available soonest"},
			{Value: "depends-location", Label: "Depends on location", Description: "Based on clinic proximity"},
		},
	},
	{
		ID:       QuestionBudget,
		Prompt:   "What is your monthly budget for treatment?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		Options: []models.Option{
			{Value: "under-100", Label: "Under £100/month", Description: "Budget-conscious"},
			{Value: "100-200", Label: "£100-200/month", Description: "Moderate budget"},
			{Value: "200-300", Label: "£200-300/month", Description: "Flexible budget"},
			{Value: "300-500", Label: "£300-500/month", Description: "Higher budget"},
			{Value: "500-plus", Label: "£500+/month", Description: "Premium budget"},
			{Value: "need-info", Label: "Need to understand costs first", Description: "Want more information"},
			{Value: "not-concern", Label: "Budget not a concern", Description: "Cost not limiting factor"},
		},
	},
	{
		ID:       QuestionTimeline,
		Prompt:   "When are you looking to start treatment?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		Options: []models.Option{
			{Value: "asap", Label: "ASAP (this week)", Description: "Urgent need"},
			{Value: "2-weeks", Label: "Within 2 weeks", Description: "Soon but not urgent"},
			{Value: "1-month", Label: "Within 1 month", Description: "No rush"},
			{Value: "3-months", Label: "Within 3 months", Description: "Planning ahead"},
			{Value: "researching", Label: "Just researching", Description: "Gathering information"},
			{Value: "depends", Label: "Depends on finding right clinic", Description: "Quality over speed"},
		},
	},
	{
		ID:       QuestionInformationSource,
		Prompt:   "How did you learn about medical cannabis treatment?",
		Type:     models.QuestionTypeSingle,
		Required: true,
		Options: []models.Option{
			{Value: "healthcare-professional", Label: "Healthcare professional", Description: "Doctor or medical provider"},
			{Value: "online-research", Label: "Online research", Description: "Internet searching"},
			{Value: "friend-family", Label: "Friend/family recommendation", Description: "Personal referral"},
			{Value: "social-media", Label: "Social media/forums", Description: "Online communities"},
			{Value: "news-media", Label: "News/media coverage", Description: "Articles or news stories"},
			{Value: "support-groups", Label: "Patient support groups", Description: "Condition-specific groups"},
			{Value: "other-patients", Label: "Other patients", Description: "Patient testimonials"},
			{Value: "clinic-advertising", Label: "Clinic advertising", Description: "Clinic marketing"},
		},
	},
}
