// internal/assessment/questionnaire/treatments.go
package questionnaire

import "eligibility-workers/internal/models"

type TreatmentCategory string

const (
	CategoryPhysical    TreatmentCategory = "physical"
	CategoryMedication  TreatmentCategory = "medication"
	CategoryTherapy     TreatmentCategory = "therapy"
	CategoryAlternative TreatmentCategory = "alternative"
)

type TreatmentOption struct {
	Value    string
	Label    string
	Category TreatmentCategory
}

// TreatmentSet names a bucket of treatment options shared by related conditions.
type TreatmentSet string

const (
	TreatmentSetChronicPain  TreatmentSet = "chronic-pain"
	TreatmentSetMentalHealth TreatmentSet = "mental-health"
	TreatmentSetSleep        TreatmentSet = "sleep"
	TreatmentSetNeurological TreatmentSet = "neurological"
	TreatmentSetOther        TreatmentSet = "other"
)

var conditionTreatmentSets = map[string]TreatmentSet{
	"chronic-pain":       TreatmentSetChronicPain,
	"fibromyalgia":       TreatmentSetChronicPain,
	"arthritis":          TreatmentSetChronicPain,
	"anxiety":            TreatmentSetMentalHealth,
	"depression":         TreatmentSetMentalHealth,
	"ptsd":               TreatmentSetMentalHealth,
	"insomnia":           TreatmentSetSleep,
	"epilepsy":           TreatmentSetNeurological,
	"multiple-sclerosis": TreatmentSetNeurological,
	"other-neurological": TreatmentSetNeurological,
}

var treatmentSets = map[TreatmentSet][]TreatmentOption{
	TreatmentSetChronicPain: {
		{"otc-painkillers", "OTC painkillers", CategoryMedication},
		{"prescription-painkillers", "Prescription painkillers", CategoryMedication},
		{"anti-inflammatories", "Anti-inflammatories", CategoryMedication},
		{"muscle-relaxants", "Muscle relaxants", CategoryMedication},
		{"antidepressants", "Antidepressants for pain", CategoryMedication},
		{"physiotherapy", "Physiotherapy", CategoryPhysical},
		{"steroid-injections", "Steroid injections", CategoryPhysical},
		{"surgery", "Surgery", CategoryPhysical},
		{"alternative-therapies", "Alternative therapies", CategoryAlternative},
		{"none", "None", CategoryAlternative},
	},
	TreatmentSetMentalHealth: {
		{"antidepressants", "Antidepressants", CategoryMedication},
		{"anti-anxiety", "Anti-anxiety medications", CategoryMedication},
		{"mood-stabilizers", "Mood stabilizers", CategoryMedication},
		{"antipsychotics", "Antipsychotics", CategoryMedication},
		{"talking-therapy", "Talking therapy", CategoryTherapy},
		{"cbt", "CBT (Cognitive Behavioral Therapy)", CategoryTherapy},
		{"emdr", "EMDR", CategoryTherapy},
		{"mindfulness", "Mindfulness programs", CategoryTherapy},
		{"alternative-therapies", "Alternative therapies", CategoryAlternative},
		{"none", "None", CategoryAlternative},
	},
	TreatmentSetSleep: {
		{"sleeping-pills", "Sleeping pills", CategoryMedication},
		{"melatonin", "Melatonin supplements", CategoryMedication},
		{"antihistamines", "Antihistamines", CategoryMedication},
		{"cbt-insomnia", "CBT for insomnia", CategoryTherapy},
		{"sleep-hygiene", "Sleep hygiene programs", CategoryTherapy},
		{"relaxation-techniques", "Relaxation techniques", CategoryAlternative},
		{"none", "None", CategoryAlternative},
	},
	TreatmentSetNeurological: {
		{"anti-epileptics", "Anti-epileptic drugs", CategoryMedication},
		{"disease-modifying", "Disease-modifying therapies", CategoryMedication},
		{"steroids", "Steroids", CategoryMedication},
		{"immunosuppressants", "Immunosuppressants", CategoryMedication},
		{"physiotherapy", "Physiotherapy", CategoryPhysical},
		{"occupational-therapy", "Occupational therapy", CategoryTherapy},
		{"surgery", "Surgery", CategoryPhysical},
		{"none", "None", CategoryAlternative},
	},
	TreatmentSetOther: {
		{"prescription-meds", "Prescription medications", CategoryMedication},
		{"otc-treatments", "Over-the-counter treatments", CategoryMedication},
		{"therapy", "Therapy/counseling", CategoryTherapy},
		{"physical-therapy", "Physical therapy", CategoryPhysical},
		{"alternative-medicine", "Alternative medicine", CategoryAlternative},
		{"none", "None", CategoryAlternative},
	},
}

// TreatmentSetFor maps a condition answer to its treatment bucket, falling back
// to TreatmentSetOther for unmapped or empty conditions.
func TreatmentSetFor(condition string) TreatmentSet {
	if set, ok := conditionTreatmentSets[condition]; ok {
		return set
	}
	return TreatmentSetOther
}

func TreatmentOptionsFor(condition string) []TreatmentOption {
	src := treatmentSets[TreatmentSetFor(condition)]
	out := make([]TreatmentOption, len(src))
	copy(out, src)
	return out
}

func treatmentQuestionOptions(condition string) []models.Option {
	src := treatmentSets[TreatmentSetFor(condition)]
	out := make([]models.Option, 0, len(src))
	for _, t := range src {
		out = append(out, models.Option{Value: t.Value, Label: t.Label})
	}
	return out
}
