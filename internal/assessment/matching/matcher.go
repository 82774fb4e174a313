// internal/assessment/matching/matcher.go
package matching

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"eligibility-workers/internal/assessment/eligibility"
	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/models"
)

const (
	DefaultMaxResults = 5
	MaxReasons        = 4
)

// Dimension weights, summing to 1.0.
const (
	weightCondition = 0.40
	weightBudget    = 0.25
	weightFormat    = 0.15
	weightTimeline  = 0.10
	weightSuccess   = 0.10
)

const (
	defaultFollowUpFee   = 50.0
	monthlyOverhead      = 100.0
	urgentSeverity       = 7
	reasonThreshold      = 70
	excellentRating      = 4.5
	wellReviewedCount    = 100
	lowConfidenceReviews = 10
)

type Matcher struct {
	maxResults int
}

type Option func(*Matcher)

// WithMaxResults overrides the ranking cutoff. Values outside 1..DefaultMaxResults
// are ignored.
func WithMaxResults(n int) Option {
	return func(m *Matcher) {
		if n > 0 && n <= DefaultMaxResults {
			m.maxResults = n
		}
	}
}

func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{maxResults: DefaultMaxResults}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match scores every clinic and returns the best matches, highest first. Clinics
// with equal scores keep their input order. The input slice is not modified.
func (m *Matcher) Match(responses models.AssessmentResponses, clinics []models.ClinicProfile) []models.ClinicMatchScore {
	scores := make([]models.ClinicMatchScore, 0, len(clinics))
	for i := range clinics {
		scores = append(scores, m.Score(responses, &clinics[i]))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if len(scores) > m.maxResults {
		scores = scores[:m.maxResults]
	}
	return scores
}

// Score computes the weighted match of a single clinic.
func (m *Matcher) Score(responses models.AssessmentResponses, clinic *models.ClinicProfile) models.ClinicMatchScore {
	condition := responses.Get(questionnaire.QuestionCondition)
	severity := questionnaire.ParseScale(responses.Get(questionnaire.QuestionSeverity))
	budget := responses.Get(questionnaire.QuestionBudget)
	format := responses.Get(questionnaire.QuestionConsultationPreference)
	timeline := responses.Get(questionnaire.QuestionTimeline)

	services := clinic.Services
	if services == nil {
		services = &models.ClinicServices{}
	}
	experience := clinic.PatientExperience
	if experience == nil {
		experience = &models.PatientExperience{}
	}

	breakdown := models.ScoreBreakdown{
		ConditionMatch:  conditionScore(condition, severity, services),
		BudgetAlignment: budgetScore(budget, clinic.Pricing),
		FormatMatch:     formatScore(format, services),
		Timeline:        timelineScore(timeline, services, experience),
		SuccessRate:     successScore(experience),
	}

	total := float64(breakdown.ConditionMatch)*weightCondition +
		float64(breakdown.BudgetAlignment)*weightBudget +
		float64(breakdown.FormatMatch)*weightFormat +
		float64(breakdown.Timeline)*weightTimeline +
		float64(breakdown.SuccessRate)*weightSuccess
	score := clamp(int(math.Round(total)), 0, 100)

	return models.ClinicMatchScore{
		ClinicID:   clinic.Overview.ID,
		ClinicName: clinic.Overview.Name,
		Score:      score,
		Percentage: score,
		Reasons:    reasons(condition, format, timeline, breakdown, clinic, services, experience),
		Breakdown:  breakdown,
	}
}

var conditionKeywords = map[string][]string{
	"chronic-pain":       {"pain", "chronic pain", "neuropathic"},
	"anxiety":            {"anxiety", "mental health", "GAD"},
	"depression":         {"depression", "mental health", "mood"},
	"ptsd":               {"PTSD", "trauma", "mental health"},
	"insomnia":           {"insomnia", "sleep", "sleep disorders"},
	"epilepsy":           {"epilepsy", "seizures", "neurological"},
	"multiple-sclerosis": {"multiple sclerosis", "MS", "neurological"},
	"ibd":                {"IBD", "Crohn", "colitis", "inflammatory"},
	"tourette":           {"Tourette", "tic", "neurological"},
	"cancer":             {"cancer", "oncology", "chemotherapy"},
	"fibromyalgia":       {"fibromyalgia", "pain", "chronic"},
	"arthritis":          {"arthritis", "joint", "pain"},
	"other-neurological": {"neurological", "brain", "nerve"},
	"other":              {"general", "chronic"},
}

var defaultKeywords = []string{"general"}

// Keywords returns the synonym list used to match a condition against clinic data.
func Keywords(condition string) []string {
	if kw, ok := conditionKeywords[condition]; ok {
		return kw
	}
	return defaultKeywords
}

func conditionScore(condition string, severity int, services *models.ClinicServices) int {
	score := 0
	for _, keyword := range Keywords(condition) {
		if containsKeyword(services.Conditions, keyword) {
			score += 40
		}
		if containsKeyword(services.Specialties, keyword) {
			score += 30
		}
	}
	if severity >= urgentSeverity && services.UrgentAppointments {
		score += 10
	}
	return clamp(score, 0, 100)
}

type budgetRange struct {
	min float64
	max float64
}

var budgetRanges = map[string]budgetRange{
	"under-100":   {0, 100},
	"100-200":     {100, 200},
	"200-300":     {200, 300},
	"300-500":     {300, 500},
	"500-plus":    {500, 10000},
	"need-info":   {0, 300},
	"not-concern": {0, 10000},
}

var defaultBudgetRange = budgetRange{0, 300}

// MonthlyEstimate approximates a clinic's recurring monthly cost from its follow-up fee.
func MonthlyEstimate(pricing *models.ClinicPricing) float64 {
	fee := 0.0
	if pricing != nil && pricing.FollowUpConsultation != nil {
		fee = pricing.FollowUpConsultation.Price
	}
	if fee <= 0 {
		fee = defaultFollowUpFee
	}
	return fee + monthlyOverhead
}

func budgetScore(budget string, pricing *models.ClinicPricing) int {
	r, ok := budgetRanges[budget]
	if !ok {
		r = defaultBudgetRange
	}
	estimate := MonthlyEstimate(pricing)

	switch {
	case estimate >= r.min && estimate <= r.max:
		return 100
	case estimate < r.min:
		return 90
	default:
		over := estimate - r.max
		return clamp(int(math.Round(math.Max(0, 100-(over/r.max)*100))), 0, 100)
	}
}

var consultationFormats = map[string]string{
	"in-person": "in-person",
	"video":     "video",
	"phone":     "phone",
}

func formatScore(preference string, services *models.ClinicServices) int {
	format, ok := consultationFormats[preference]
	if !ok {
		// no-preference, depends-location and unanswered
		return 100
	}
	for _, t := range services.ConsultationTypes {
		if strings.EqualFold(t, format) {
			return 100
		}
	}
	return 40
}

func timelineScore(timeline string, services *models.ClinicServices, experience *models.PatientExperience) int {
	switch timeline {
	case "researching", "depends":
		return 100
	case "asap":
		if services.UrgentAppointments {
			return 100
		}
		return 60
	case "2-weeks":
		if strings.Contains(strings.ToLower(experience.NextAvailableAppointment), "week") {
			return 90
		}
		return 70
	default:
		return 80
	}
}

func successScore(experience *models.PatientExperience) int {
	score := experience.OverallRating / 5 * 100
	if experience.TotalReviews > wellReviewedCount {
		score = math.Min(score+10, 100)
	}
	if experience.TotalReviews < lowConfidenceReviews {
		score *= 0.8
	}
	return clamp(int(math.Round(score)), 0, 100)
}

func reasons(condition, format, timeline string, b models.ScoreBreakdown, clinic *models.ClinicProfile,
	services *models.ClinicServices, experience *models.PatientExperience) []string {
	out := make([]string, 0, MaxReasons)

	if b.ConditionMatch > reasonThreshold {
		out = append(out, fmt.Sprintf("Specializes in %s treatment", eligibility.ConditionName(condition)))
	}
	if b.BudgetAlignment > reasonThreshold {
		out = append(out, "Pricing aligns well with your budget")
	}
	if _, concrete := consultationFormats[format]; concrete && b.FormatMatch == 100 {
		out = append(out, fmt.Sprintf("Offers your preferred %s consultation", strings.ReplaceAll(format, "-", " ")))
	}
	if b.Timeline > 80 && timeline == "asap" {
		out = append(out, "Fast appointment availability")
	}
	if experience.OverallRating >= excellentRating {
		out = append(out, fmt.Sprintf("Excellent patient reviews (%s/5.0)", strconv.FormatFloat(experience.OverallRating, 'f', -1, 64)))
	}
	if services.UrgentAppointments && timeline == "asap" {
		out = append(out, "Offers urgent appointments")
	}
	if services.HomeDelivery {
		out = append(out, "Provides home delivery service")
	}
	if clinic.Pharmacy != nil && clinic.Pharmacy.InHousePharmacy {
		out = append(out, "Has in-house pharmacy for convenience")
	}

	if len(out) > MaxReasons {
		out = out[:MaxReasons]
	}
	return out
}

func containsKeyword(values []string, keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), keyword) {
			return true
		}
	}
	return false
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
