// internal/assessment/matching/matcher_test.go
package matching

import (
	"fmt"
	"testing"

	"eligibility-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestResponses(budget string) models.AssessmentResponses {
	return models.AssessmentResponses{
		"condition":               models.SingleAnswer("chronic-pain"),
		"severity":                models.SingleAnswer("8"),
		"budget":                  models.SingleAnswer(budget),
		"consultation-preference": models.SingleAnswer("video"),
		"timeline":                models.SingleAnswer("asap"),
	}
}

func createPainClinic(followUp float64) models.ClinicProfile {
	return models.ClinicProfile{
		Overview: models.ClinicOverview{ID: "clinic-pain", Name: "Pain Relief Clinic"},
		Pricing: &models.ClinicPricing{
			FollowUpConsultation: &models.ConsultationFee{Price: followUp},
		},
		Services: &models.ClinicServices{
			Conditions:         []string{"Chronic Pain"},
			Specialties:        []string{"Pain Management"},
			ConsultationTypes:  []string{"video", "phone"},
			UrgentAppointments: true,
			HomeDelivery:       true,
		},
		PatientExperience: &models.PatientExperience{OverallRating: 4.8, TotalReviews: 250},
		Pharmacy:          &models.ClinicPharmacy{InHousePharmacy: true},
	}
}

func createUnrelatedClinic(followUp float64) models.ClinicProfile {
	return models.ClinicProfile{
		Overview: models.ClinicOverview{ID: "clinic-derm", Name: "Skin Clinic"},
		Pricing: &models.ClinicPricing{
			FollowUpConsultation: &models.ConsultationFee{Price: followUp},
		},
		Services: &models.ClinicServices{
			Specialties:       []string{"Dermatology"},
			ConsultationTypes: []string{"in-person"},
		},
		PatientExperience: &models.PatientExperience{OverallRating: 3.0, TotalReviews: 20},
	}
}

func bareClinic(id string) models.ClinicProfile {
	return models.ClinicProfile{Overview: models.ClinicOverview{ID: id, Name: "Clinic " + id}}
}

// ==========================
// Match Tests
// ==========================

func TestMatch_SpecialistInBudgetRanksFirst(t *testing.T) {
	m := NewMatcher()
	clinics := []models.ClinicProfile{createUnrelatedClinic(600), createPainClinic(50)}

	matches := m.Match(createTestResponses("under-100"), clinics)

	require.Len(t, matches, 2)
	assert.Equal(t, "clinic-pain", matches[0].ClinicID)
	assert.Equal(t, "clinic-derm", matches[1].ClinicID)
	assert.Greater(t, matches[0].Score, matches[1].Score)

	assert.Equal(t, 100, matches[0].Breakdown.ConditionMatch)
	assert.Equal(t, 50, matches[0].Breakdown.BudgetAlignment)
	assert.Equal(t, 0, matches[1].Breakdown.BudgetAlignment)
	assert.Equal(t, 0, matches[1].Breakdown.ConditionMatch)

	// input is left untouched
	assert.Equal(t, "clinic-derm", clinics[0].Overview.ID)
}

func TestMatch_PerfectFit(t *testing.T) {
	m := NewMatcher()

	matches := m.Match(createTestResponses("100-200"), []models.ClinicProfile{createPainClinic(50)})

	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, got.Score, got.Percentage)
	assert.Equal(t, models.ScoreBreakdown{
		ConditionMatch:  100,
		BudgetAlignment: 100,
		FormatMatch:     100,
		Timeline:        100,
		SuccessRate:     100,
	}, got.Breakdown)
	assert.Equal(t, []string{
		"Specializes in Chronic Pain treatment",
		"Pricing aligns well with your budget",
		"Offers your preferred video consultation",
		"Fast appointment availability",
	}, got.Reasons)
}

func TestMatch_ReasonsPriorityAfterTruncation(t *testing.T) {
	m := NewMatcher()

	matches := m.Match(createTestResponses("under-100"), []models.ClinicProfile{createPainClinic(50)})

	require.Len(t, matches, 1)
	assert.Equal(t, []string{
		"Specializes in Chronic Pain treatment",
		"Offers your preferred video consultation",
		"Fast appointment availability",
		"Excellent patient reviews (4.8/5.0)",
	}, matches[0].Reasons)
}

func TestMatch_MissingNestedFieldsDegrade(t *testing.T) {
	m := NewMatcher()

	matches := m.Match(createTestResponses("100-200"), []models.ClinicProfile{bareClinic("bare")})

	require.Len(t, matches, 1)
	got := matches[0]
	assert.Equal(t, "bare", got.ClinicID)
	assert.Equal(t, models.ScoreBreakdown{
		ConditionMatch:  0,
		BudgetAlignment: 100,
		FormatMatch:     40,
		Timeline:        60,
		SuccessRate:     0,
	}, got.Breakdown)
	assert.Equal(t, 37, got.Score)
	assert.Equal(t, []string{"Pricing aligns well with your budget"}, got.Reasons)
}

func TestMatch_CapInvariants(t *testing.T) {
	m := NewMatcher()

	for _, n := range []int{0, 1, 5, 50} {
		t.Run(fmt.Sprintf("%d clinics", n), func(t *testing.T) {
			clinics := make([]models.ClinicProfile, 0, n)
			for i := 0; i < n; i++ {
				c := createPainClinic(float64(20 * i))
				c.Overview.ID = fmt.Sprintf("clinic-%d", i)
				clinics = append(clinics, c)
			}

			matches := m.Match(createTestResponses("200-300"), clinics)

			want := n
			if want > DefaultMaxResults {
				want = DefaultMaxResults
			}
			assert.Len(t, matches, want)
			for i, match := range matches {
				assert.LessOrEqual(t, len(match.Reasons), MaxReasons)
				if i > 0 {
					assert.LessOrEqual(t, match.Score, matches[i-1].Score)
				}
			}
		})
	}
}

func TestMatch_TiesKeepInputOrder(t *testing.T) {
	m := NewMatcher()
	clinics := []models.ClinicProfile{bareClinic("a"), bareClinic("b"), bareClinic("c")}

	matches := m.Match(createTestResponses("need-info"), clinics)

	require.Len(t, matches, 3)
	assert.Equal(t, "a", matches[0].ClinicID)
	assert.Equal(t, "b", matches[1].ClinicID)
	assert.Equal(t, "c", matches[2].ClinicID)
}

func TestMatch_WithMaxResults(t *testing.T) {
	clinics := []models.ClinicProfile{bareClinic("a"), bareClinic("b"), bareClinic("c"), bareClinic("d")}

	assert.Len(t, NewMatcher(WithMaxResults(3)).Match(nil, clinics), 3)
	assert.Len(t, NewMatcher(WithMaxResults(0)).Match(nil, clinics), 4)
	assert.Len(t, NewMatcher(WithMaxResults(9)).Match(nil, clinics), 4)
}

func TestMatch_Deterministic(t *testing.T) {
	m := NewMatcher()
	clinics := []models.ClinicProfile{createUnrelatedClinic(80), createPainClinic(120), bareClinic("x")}
	responses := createTestResponses("100-200")

	first := m.Match(responses, clinics)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Match(responses, clinics))
	}
}

// ==========================
// Dimension Tests
// ==========================

func TestConditionScore(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		severity  int
		services  models.ClinicServices
		want      int
	}{
		{"no overlap", "anxiety", 5, models.ClinicServices{Conditions: []string{"Arthritis"}}, 0},
		{"condition keyword", "anxiety", 5, models.ClinicServices{Conditions: []string{"Anxiety"}}, 40},
		{"specialty keyword", "insomnia", 5, models.ClinicServices{Specialties: []string{"Sleep Medicine"}}, 30},
		{"severity bonus", "anxiety", 8, models.ClinicServices{Conditions: []string{"Anxiety"}, UrgentAppointments: true}, 50},
		{"bonus needs urgent", "anxiety", 8, models.ClinicServices{Conditions: []string{"Anxiety"}}, 40},
		{"capped", "chronic-pain", 9, models.ClinicServices{
			Conditions:         []string{"Chronic Pain", "Neuropathic pain"},
			Specialties:        []string{"Pain"},
			UrgentAppointments: true,
		}, 100},
		{"unknown condition uses general", "mystery", 1, models.ClinicServices{Specialties: []string{"General Practice"}}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := tt.services
			assert.Equal(t, tt.want, conditionScore(tt.condition, tt.severity, &services))
		})
	}
}

func TestBudgetScore(t *testing.T) {
	fee := func(p float64) *models.ClinicPricing {
		return &models.ClinicPricing{FollowUpConsultation: &models.ConsultationFee{Price: p}}
	}

	tests := []struct {
		name    string
		budget  string
		pricing *models.ClinicPricing
		want    int
	}{
		{"missing pricing over range", "under-100", nil, 50},
		{"inside range", "100-200", fee(50), 100},
		{"cheaper than range", "200-300", fee(50), 90},
		{"linear penalty", "300-500", fee(500), 80},
		{"floored at zero", "under-100", fee(250), 0},
		{"zero fee uses default", "100-200", fee(0), 100},
		{"unknown budget uses default range", "mystery", fee(150), 100},
		{"not a concern", "not-concern", fee(900), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, budgetScore(tt.budget, tt.pricing))
		})
	}
}

func TestFormatScore(t *testing.T) {
	services := &models.ClinicServices{ConsultationTypes: []string{"video", "In-Person"}}

	tests := []struct {
		preference string
		want       int
	}{
		{"no-preference", 100},
		{"depends-location", 100},
		{"", 100},
		{"video", 100},
		{"in-person", 100},
		{"phone", 40},
	}

	for _, tt := range tests {
		t.Run(tt.preference, func(t *testing.T) {
			assert.Equal(t, tt.want, formatScore(tt.preference, services))
		})
	}
}

func TestTimelineScore(t *testing.T) {
	tests := []struct {
		name     string
		timeline string
		urgent   bool
		next     string
		want     int
	}{
		{"researching", "researching", false, "", 100},
		{"depends", "depends", false, "", 100},
		{"asap urgent", "asap", true, "", 100},
		{"asap not urgent", "asap", false, "", 60},
		{"two weeks within a week", "2-weeks", false, "Within a week", 90},
		{"two weeks days", "2-weeks", false, "3 days", 70},
		{"other", "1-month", false, "", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := &models.ClinicServices{UrgentAppointments: tt.urgent}
			experience := &models.PatientExperience{NextAvailableAppointment: tt.next}
			assert.Equal(t, tt.want, timelineScore(tt.timeline, services, experience))
		})
	}
}

func TestSuccessScore(t *testing.T) {
	tests := []struct {
		name    string
		rating  float64
		reviews int
		want    int
	}{
		{"plain", 4.0, 50, 80},
		{"well reviewed boost", 3.5, 150, 80},
		{"boost capped", 5.0, 200, 100},
		{"few reviews discount", 4.0, 5, 64},
		{"no data", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := &models.PatientExperience{OverallRating: tt.rating, TotalReviews: tt.reviews}
			assert.Equal(t, tt.want, successScore(exp))
		})
	}
}

func TestScore_BoundsAcrossInputs(t *testing.T) {
	m := NewMatcher()
	budgets := []string{"", "under-100", "500-plus", "not-concern"}
	timelines := []string{"", "asap", "2-weeks", "researching"}
	fees := []float64{0, 40, 450, 5000}

	for _, b := range budgets {
		for _, tl := range timelines {
			for _, f := range fees {
				r := createTestResponses(b)
				r["timeline"] = models.SingleAnswer(tl)
				for _, c := range []models.ClinicProfile{createPainClinic(f), createUnrelatedClinic(f), bareClinic("z")} {
					s := m.Score(r, &c)
					for _, v := range []int{s.Score, s.Percentage, s.Breakdown.ConditionMatch, s.Breakdown.BudgetAlignment,
						s.Breakdown.FormatMatch, s.Breakdown.Timeline, s.Breakdown.SuccessRate} {
						require.GreaterOrEqual(t, v, 0)
						require.LessOrEqual(t, v, 100)
					}
					require.LessOrEqual(t, len(s.Reasons), MaxReasons)
				}
			}
		}
	}
}

func TestScore_DecimalSeverityCountsAsUrgent(t *testing.T) {
	m := NewMatcher()
	clinic := createPainClinic(120)

	whole := createTestResponses("100-200")
	whole["severity"] = models.SingleAnswer("8")
	decimal := createTestResponses("100-200")
	decimal["severity"] = models.SingleAnswer("8.5")

	assert.Equal(t, m.Score(whole, &clinic).Breakdown, m.Score(decimal, &clinic).Breakdown)
	assert.Equal(t, 100, m.Score(decimal, &clinic).Breakdown.ConditionMatch)
}
