// Package results stores completed assessments and their ranked clinic matches.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"eligibility-workers/internal/common/database"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	insertAssessmentQuery = `INSERT INTO eligibility_assessments (
		id, session_id, responses, email, name, condition, severity,
		eligibility_status, eligibility_confidence, matched_clinics,
		completed, current_step, completed_at, completion_time_seconds
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, $11, $12, $13)`

	insertMatchQuery = `INSERT INTO assessment_clinic_matches (
		assessment_id, clinic_id, clinic_name, match_score, match_percentage,
		match_reasons, score_breakdown, ranking
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
)

// RecordInput is everything persisted for one completed assessment.
type RecordInput struct {
	SessionID      string
	Responses      models.AssessmentResponses
	Eligibility    models.EligibilityScore
	Matches        []models.ClinicMatchScore
	CompletedAt    time.Time
	CompletionTime time.Duration
	TotalSteps     int
}

type Recorder struct {
	db    *database.PostgresClient
	newID func() string
}

func NewRecorder(db *database.PostgresClient) *Recorder {
	return &Recorder{db: db, newID: uuid.NewString}
}

// Record writes the assessment row and one row per match, ranked from 1, in a
// single transaction. Failures come back as PERSISTENCE_FAILED.
func (r *Recorder) Record(ctx context.Context, in RecordInput) (string, error) {
	id := r.newID()

	responsesJSON, err := json.Marshal(in.Responses)
	if err != nil {
		return "", errors.NewPersistenceFailedError("record_assessment", err)
	}
	matches := in.Matches
	if matches == nil {
		matches = []models.ClinicMatchScore{}
	}
	matchesJSON, err := json.Marshal(matches)
	if err != nil {
		return "", errors.NewPersistenceFailedError("record_assessment", err)
	}

	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertAssessmentQuery,
			id,
			in.SessionID,
			responsesJSON,
			nullString(in.Responses.Email()),
			nullString(in.Responses.Name()),
			nullString(in.Responses.Get("condition")),
			nullSeverity(in.Responses.Get("severity")),
			string(in.Eligibility.Status),
			in.Eligibility.Confidence,
			matchesJSON,
			in.TotalSteps,
			in.CompletedAt.UTC(),
			int64(in.CompletionTime/time.Second),
		); err != nil {
			return fmt.Errorf("insert assessment: %w", err)
		}

		for i, m := range matches {
			breakdown, err := json.Marshal(m.Breakdown)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, insertMatchQuery,
				id,
				m.ClinicID,
				m.ClinicName,
				m.Score,
				m.Percentage,
				pq.Array(m.Reasons),
				breakdown,
				i+1,
			); err != nil {
				return fmt.Errorf("insert match %s: %w", m.ClinicID, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", errors.NewPersistenceFailedError("record_assessment", err)
	}
	return id, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullSeverity(s string) sql.NullInt64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}
