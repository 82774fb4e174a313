// internal/workers/assessment/assessment-navigate/handler.go
package assessmentnavigate

import (
	"context"
	"fmt"
	"time"

	"eligibility-workers/internal/assessment/progress"
	"eligibility-workers/internal/assessment/questionnaire"
	"eligibility-workers/internal/common/camunda"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/common/logger"
	"eligibility-workers/internal/common/observability"
	"eligibility-workers/internal/common/validation"
	"eligibility-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "assessment-navigate"

type Handler struct {
	config *Config
	store  *progress.Store
	runner *camunda.JobRunner
	obs    *observability.Observability
	logger logger.Logger
	now    func() time.Time
}

// NewHandler builds the navigation worker. store may be nil, which disables
// save, clear and resume.
func NewHandler(config *Config, store *progress.Store, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		store:  store,
		runner: camunda.NewJobRunner(TaskType, log,
			camunda.WithValidator(validation.MustValidator(InputSchema)),
			camunda.WithObservability(obs),
		),
		obs:    obs,
		logger: log,
		now:    time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, h.config.Timeout, h.execute)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	flow := questionnaire.NewFlow(questionnaire.WithClock(h.now))
	flow.Restore(questionnaire.State{
		Step:          input.CurrentStep,
		Responses:     input.Responses,
		EmailCaptured: input.EmailCaptured,
		NeedsContact:  input.NeedsContact,
		StepStartedAt: input.StepStartedAt,
	})

	sessionID := input.SessionID
	newSession := sessionID == ""
	if newSession {
		sessionID = progress.NewSessionID()
		if h.store != nil && input.Action != ActionRestart {
			h.store.MarkStarted(ctx, sessionID)
		}
	}

	var (
		tr      questionnaire.Transition
		resumed bool
	)

	switch input.Action {
	case ActionCurrent:
		tr = questionnaire.Transition{From: flow.Step(), To: flow.Step()}

	case ActionNext:
		if input.Answer == nil {
			return nil, errors.NewInvalidNavigationError(questionnaire.ErrStepInvalid)
		}
		q, _ := flow.CurrentQuestion()
		var err error
		if tr, err = flow.Advance(*input.Answer); err != nil {
			return nil, errors.NewInvalidNavigationError(err)
		}
		if tr.To != tr.From {
			h.obs.RecordStepDwell(ctx, q.ID, tr.Dwell)
		}

	case ActionBack:
		tr = flow.Retreat()

	case ActionCaptureContact:
		if input.Contact == nil || !validation.IsEmail(input.Contact.Email) {
			email := ""
			if input.Contact != nil {
				email = input.Contact.Email
			}
			return nil, errors.NewInvalidContactError(
				fmt.Errorf("%w: %q is not an email address", questionnaire.ErrInvalidContact, email))
		}
		var err error
		if tr, err = flow.CaptureContact(input.Contact.Email, input.Contact.Name); err != nil {
			return nil, errors.NewInvalidContactError(err)
		}

	case ActionSkipContact:
		tr = flow.SkipContact()

	case ActionRestart:
		if h.store != nil {
			h.store.Restart(ctx, sessionID)
		}
		flow.Reset()
		tr = questionnaire.Transition{From: input.CurrentStep, To: flow.Step()}

	case ActionResume:
		if saved := h.load(ctx, input.SessionID); saved != nil {
			flow.Restore(questionnaire.State{Step: saved.CurrentStep, Responses: saved.Responses})
			resumed = true
		}
		tr = questionnaire.Transition{From: input.CurrentStep, To: flow.Step()}

	default:
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown action %q", input.Action))
	}

	if h.shouldSave(input.Action) {
		h.store.Save(ctx, sessionID, flow.Step(), flow.Responses())
	}

	h.logger.Debug("assessment navigated", map[string]interface{}{
		"sessionId":    sessionID,
		"action":       string(input.Action),
		"from":         tr.From,
		"to":           flow.Step(),
		"needsContact": flow.NeedsContact(),
		"resumed":      resumed,
	})

	return present(flow, sessionID, tr, resumed), nil
}

func (h *Handler) load(ctx context.Context, sessionID string) *models.AssessmentProgress {
	if h.store == nil || sessionID == "" {
		return nil
	}
	return h.store.Load(ctx, sessionID)
}

func (h *Handler) shouldSave(action Action) bool {
	if !h.config.SaveProgress || h.store == nil {
		return false
	}
	switch action {
	case ActionNext, ActionBack, ActionCaptureContact, ActionSkipContact:
		return true
	}
	return false
}

func present(flow *questionnaire.Flow, sessionID string, tr questionnaire.Transition, resumed bool) *Output {
	state := flow.Snapshot()
	out := &Output{
		SessionID:     sessionID,
		Step:          state.Step,
		Total:         flow.Total(),
		Section:       flow.Section(),
		Progress:      flow.Progress(),
		NeedsContact:  state.NeedsContact,
		ReadyToSubmit: flow.ReadyToSubmit(),
		EmailCaptured: state.EmailCaptured,
		Responses:     state.Responses,
		DwellMs:       tr.Dwell.Milliseconds(),
		StepStartedAt: state.StepStartedAt,
		Resumed:       resumed,
	}
	if q, ok := flow.CurrentQuestion(); ok {
		out.Question = &q
	}
	return out
}
