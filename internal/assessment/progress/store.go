// Package progress keeps in-flight assessments in Redis so a respondent can
// resume within a day. Every operation is best-effort: failures are logged and
// reported as a false/nil result, never as an error.
package progress

import (
	"context"
	"strconv"
	"time"

	"eligibility-workers/internal/common/database"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/metrics"
	"eligibility-workers/internal/models"

	"github.com/google/uuid"
)

const (
	progressKeyPrefix = "assessment:progress:"
	startedKeyPrefix  = "assessment:started:"

	DefaultTTL = 24 * time.Hour
)

func progressKey(sessionID string) string { return progressKeyPrefix + sessionID }

func startedKey(sessionID string) string { return startedKeyPrefix + sessionID }

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return "session_" + uuid.NewString()
}

type Store struct {
	redis  *database.RedisClient
	ttl    time.Duration
	now    func() time.Time
	logger logger.Logger
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(rc *database.RedisClient, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		redis:  rc,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"component": "progress-store"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save overwrites the stored progress for sessionID and marks the start if no
// start is recorded yet.
func (s *Store) Save(ctx context.Context, sessionID string, step int, responses models.AssessmentResponses) bool {
	now := s.now().UTC()
	p := models.AssessmentProgress{
		SessionID:   sessionID,
		CurrentStep: step,
		Responses:   responses,
		SavedAt:     now,
	}

	if err := s.redis.SetJSON(ctx, progressKey(sessionID), p, s.ttl); err != nil {
		s.warn("save_progress", sessionID, err)
		return false
	}

	s.MarkStarted(ctx, sessionID)
	return true
}

// MarkStarted records now as the start of the assessment unless a start is
// already recorded for sessionID.
func (s *Store) MarkStarted(ctx context.Context, sessionID string) bool {
	started := strconv.FormatInt(s.now().UTC().UnixMilli(), 10)
	if err := s.redis.Client.SetNX(ctx, startedKey(sessionID), started, s.ttl).Err(); err != nil {
		s.warn("mark_started", sessionID, err)
		return false
	}
	return true
}

// Restart drops the saved progress and starts the assessment clock again.
func (s *Store) Restart(ctx context.Context, sessionID string) bool {
	if err := s.redis.Del(ctx, progressKey(sessionID)); err != nil {
		s.warn("clear_progress", sessionID, err)
		return false
	}
	started := strconv.FormatInt(s.now().UTC().UnixMilli(), 10)
	if err := s.redis.Client.Set(ctx, startedKey(sessionID), started, s.ttl).Err(); err != nil {
		s.warn("mark_started", sessionID, err)
		return false
	}
	return true
}

// Load returns the saved progress, or nil when there is none, it cannot be
// read, or it is older than the TTL. Expired entries are removed.
func (s *Store) Load(ctx context.Context, sessionID string) *models.AssessmentProgress {
	var p models.AssessmentProgress
	found, err := s.redis.GetJSON(ctx, progressKey(sessionID), &p)
	if err != nil {
		s.warn("load_progress", sessionID, err)
		return nil
	}
	if !found {
		return nil
	}

	if s.now().Sub(p.SavedAt) > s.ttl {
		if err := s.redis.Del(ctx, progressKey(sessionID)); err != nil {
			s.warn("expire_progress", sessionID, err)
		}
		return nil
	}

	if p.SessionID == "" {
		p.SessionID = sessionID
	}
	if p.CurrentStep < 1 {
		p.CurrentStep = 1
	}
	if p.Responses == nil {
		p.Responses = models.AssessmentResponses{}
	}
	return &p
}

// Clear removes the progress and the start marker.
func (s *Store) Clear(ctx context.Context, sessionID string) bool {
	if err := s.redis.Del(ctx, progressKey(sessionID), startedKey(sessionID)); err != nil {
		s.warn("clear_progress", sessionID, err)
		return false
	}
	return true
}

// CompletionTime is the time between the recorded start and completedAt. It is
// zero when the start marker is missing or unreadable.
func (s *Store) CompletionTime(ctx context.Context, sessionID string, completedAt time.Time) time.Duration {
	raw, err := s.redis.Client.Get(ctx, startedKey(sessionID)).Result()
	if err != nil {
		return 0
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	d := completedAt.Sub(time.UnixMilli(ms))
	if d < 0 {
		return 0
	}
	return d
}

func (s *Store) warn(operation, sessionID string, err error) {
	metrics.RecordPersistenceFailure(operation)
	s.logger.Warn("progress persistence failed", map[string]interface{}{
		"operation": operation,
		"sessionId": sessionID,
		"error":     err,
	})
}
