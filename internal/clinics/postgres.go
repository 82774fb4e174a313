package clinics

import (
	"context"
	"encoding/json"

	"eligibility-workers/internal/common/database"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/models"
)

const listClinicsQuery = `SELECT id, profile FROM clinics WHERE active = true ORDER BY id`

// PostgresSource reads profiles stored as jsonb in the clinics table.
type PostgresSource struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func NewPostgresSource(db *database.PostgresClient, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "clinic-source", "backend": "postgres"}),
	}
}

// List skips rows whose profile cannot be decoded rather than failing the
// whole directory.
func (s *PostgresSource) List(ctx context.Context) ([]models.ClinicProfile, error) {
	rows, err := s.db.Query(ctx, listClinicsQuery)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_clinics", err)
	}
	defer rows.Close()

	var out []models.ClinicProfile
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_clinics", err)
		}

		var profile models.ClinicProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			s.logger.Warn("skipping clinic with unreadable profile", map[string]interface{}{
				"clinicId": id,
				"error":    err,
			})
			continue
		}
		if profile.Overview.ID == "" {
			profile.Overview.ID = id
		}
		out = append(out, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_clinics", err)
	}
	return out, nil
}
