// Package clinics loads the clinic directory the matcher ranks against.
package clinics

import (
	"context"

	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/models"
)

// Source lists every active clinic.
type Source interface {
	List(ctx context.Context) ([]models.ClinicProfile, error)
}

// Load lists clinics from src. A failed load and an empty directory both come
// back as CLINICS_UNAVAILABLE so the matcher never sees a partial list.
func Load(ctx context.Context, src Source) ([]models.ClinicProfile, error) {
	list, err := src.List(ctx)
	if err != nil {
		return nil, errors.NewClinicsUnavailableError(err)
	}
	if len(list) == 0 {
		return nil, errors.NewClinicsUnavailableError(nil)
	}
	return list, nil
}

// StaticSource serves a fixed list. Callers that already hold the directory
// use it to skip the lookup.
type StaticSource []models.ClinicProfile

func (s StaticSource) List(context.Context) ([]models.ClinicProfile, error) {
	out := make([]models.ClinicProfile, len(s))
	copy(out, s)
	return out, nil
}
