// internal/models/clinic.go
package models

// ClinicProfile is the directory record for a clinic. Nested sections are pointers
// because the directory frequently omits them; consumers substitute defaults.
type ClinicProfile struct {
	Overview          ClinicOverview     `json:"overview"`
	Pricing           *ClinicPricing     `json:"pricing,omitempty"`
	Services          *ClinicServices    `json:"services,omitempty"`
	PatientExperience *PatientExperience `json:"patientExperience,omitempty"`
	Pharmacy          *ClinicPharmacy    `json:"pharmacy,omitempty"`
}

type ClinicOverview struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Tagline string         `json:"tagline,omitempty"`
	Website string         `json:"website,omitempty"`
	Phone   string         `json:"phone,omitempty"`
	Email   string         `json:"email,omitempty"`
	Address *ClinicAddress `json:"address,omitempty"`
}

type ClinicAddress struct {
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Region   string `json:"region,omitempty"`
	Country  string `json:"country,omitempty"`
}

type ConsultationFee struct {
	Price float64 `json:"price"`
	Notes string  `json:"notes,omitempty"`
}

type AnnualCostEstimate struct {
	Low     float64 `json:"low"`
	Average float64 `json:"average"`
	High    float64 `json:"high"`
}

type ClinicPricing struct {
	InitialConsultation  *ConsultationFee    `json:"initialConsultation,omitempty"`
	FollowUpConsultation *ConsultationFee    `json:"followUpConsultation,omitempty"`
	PrescriptionFee      float64             `json:"prescriptionFee,omitempty"`
	DeliveryFee          float64             `json:"deliveryFee,omitempty"`
	EstimatedAnnualCost  *AnnualCostEstimate `json:"estimatedAnnualCost,omitempty"`
}

type ClinicServices struct {
	Specialties          []string `json:"specialties,omitempty"`
	Conditions           []string `json:"conditions,omitempty"`
	ConsultationTypes    []string `json:"consultationTypes,omitempty"`
	HomeDelivery         bool     `json:"homeDelivery"`
	UrgentAppointments   bool     `json:"urgentAppointments"`
	FollowUpSupport      bool     `json:"followUpSupport"`
	EducationalResources bool     `json:"educationalResources"`
}

type PatientExperience struct {
	OverallRating            float64 `json:"overallRating"`
	TotalReviews             int     `json:"totalReviews"`
	NextAvailableAppointment string  `json:"nextAvailableAppointment,omitempty"`
}

type ClinicPharmacy struct {
	InHousePharmacy bool `json:"inHousePharmacy"`
}
