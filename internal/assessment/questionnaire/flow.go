// internal/assessment/questionnaire/flow.go
package questionnaire

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"eligibility-workers/internal/models"
)

// ContactGateStep is the step after which contact details are requested.
const ContactGateStep = 3

var (
	ErrAssessmentComplete = errors.New("assessment already complete")
	ErrStepInvalid        = errors.New("current step has no valid answer")
	ErrInvalidContact     = errors.New("contact email is required")
	ErrAnswerNotSingle    = errors.New("question takes a single answer")
)

// State is the serializable part of a flow, carried between navigation calls.
type State struct {
	Step          int
	Responses     models.AssessmentResponses
	EmailCaptured bool
	NeedsContact  bool
	StepStartedAt time.Time
}

// Transition describes the outcome of a navigation operation.
type Transition struct {
	From          int
	To            int
	Dwell         time.Duration
	NeedsContact  bool
	ReadyToSubmit bool
}

// Flow walks the question list for one session. It is not safe for concurrent use.
type Flow struct {
	questions     []models.Question
	step          int
	responses     models.AssessmentResponses
	emailCaptured bool
	needsContact  bool
	stepStartedAt time.Time
	now           func() time.Time
}

type FlowOption func(*Flow)

func WithClock(now func() time.Time) FlowOption {
	return func(f *Flow) { f.now = now }
}

func WithQuestions(questions []models.Question) FlowOption {
	return func(f *Flow) { f.questions = questions }
}

func NewFlow(opts ...FlowOption) *Flow {
	f := &Flow{
		now:       time.Now,
		step:      1,
		responses: models.AssessmentResponses{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.questions == nil {
		f.questions = Questions()
	}
	f.stepStartedAt = f.now()
	f.step = f.firstVisibleFrom(1)
	return f
}

func (f *Flow) Step() int { return f.step }
func (f *Flow) Total() int { return len(f.questions) }
func (f *Flow) EmailCaptured() bool { return f.emailCaptured }
func (f *Flow) NeedsContact() bool { return f.needsContact }
func (f *Flow) ReadyToSubmit() bool { return f.step > len(f.questions) }
func (f *Flow) Responses() models.AssessmentResponses { return f.responses.Clone() }

func (f *Flow) Snapshot() State {
	return State{
		Step:          f.step,
		Responses:     f.responses.Clone(),
		EmailCaptured: f.emailCaptured,
		NeedsContact:  f.needsContact,
		StepStartedAt: f.stepStartedAt,
	}
}

// Restore loads a previously saved state. Out-of-range steps restart at the first
// question and a step that is now skipped moves forward to the next visible one.
func (f *Flow) Restore(s State) {
	f.responses = s.Responses.Clone()
	f.emailCaptured = s.EmailCaptured || f.responses.Email() != ""
	f.stepStartedAt = s.StepStartedAt
	if f.stepStartedAt.IsZero() {
		f.stepStartedAt = f.now()
	}

	step := s.Step
	if step < 1 || step > len(f.questions)+1 {
		step = 1
	}
	f.step = f.firstVisibleFrom(step)
	f.needsContact = s.NeedsContact && f.step == ContactGateStep && !f.emailCaptured
}

// Reset clears all answers and contact state and returns to the first question.
func (f *Flow) Reset() {
	f.responses = models.AssessmentResponses{}
	f.emailCaptured = false
	f.needsContact = false
	f.stepStartedAt = f.now()
	f.step = f.firstVisibleFrom(1)
}

// CurrentQuestion returns the question at the current step with dependent options
// resolved. ok is false once the flow is ready to submit.
func (f *Flow) CurrentQuestion() (models.Question, bool) {
	if f.ReadyToSubmit() {
		return models.Question{}, false
	}
	q := f.questions[f.step-1]
	if q.ID == QuestionPreviousTreatments {
		q.Options = treatmentQuestionOptions(f.responses.Get(QuestionCondition))
	} else {
		q.Options = append([]models.Option(nil), q.Options...)
	}
	return q, true
}

// IsStepValid reports whether the current question holds a usable answer.
func (f *Flow) IsStepValid() bool {
	if f.ReadyToSubmit() {
		return true
	}
	return f.answered(f.questions[f.step-1])
}

// Advance records answer for the current question and moves to the next visible
// step. Answering the contact gate step without captured contact suspends the
// transition until CaptureContact or SkipContact.
func (f *Flow) Advance(answer models.Answer) (Transition, error) {
	if f.ReadyToSubmit() {
		return Transition{}, ErrAssessmentComplete
	}
	q := f.questions[f.step-1]
	if q.Required && answer.IsEmpty() {
		return Transition{}, ErrStepInvalid
	}
	if answer.Multi && q.Type != models.QuestionTypeMultiple {
		return Transition{}, fmt.Errorf("%w: %s", ErrAnswerNotSingle, q.ID)
	}
	f.responses[q.ID] = answer
	f.needsContact = false

	if f.step == ContactGateStep && !f.emailCaptured {
		f.needsContact = true
		return Transition{From: f.step, To: f.step, NeedsContact: true}, nil
	}
	return f.moveForward(), nil
}

// CaptureContact stores the contact details and resumes a suspended transition.
func (f *Flow) CaptureContact(email, name string) (Transition, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Transition{}, ErrInvalidContact
	}
	f.responses[models.ResponseKeyEmail] = models.SingleAnswer(email)
	if name = strings.TrimSpace(name); name != "" {
		f.responses[models.ResponseKeyName] = models.SingleAnswer(name)
	}
	f.emailCaptured = true
	return f.resumeAfterContact(), nil
}

// SkipContact dismisses the contact request. The gate is not shown again for
// this session.
func (f *Flow) SkipContact() Transition {
	f.emailCaptured = true
	return f.resumeAfterContact()
}

// Retreat moves to the previous visible step, floored at step 1.
func (f *Flow) Retreat() Transition {
	from := f.step
	f.needsContact = false
	if f.step <= 1 {
		return Transition{From: from, To: f.step}
	}

	prev := f.step - 1
	for prev > 0 && ShouldSkip(f.questions[prev-1], f.responses) {
		prev--
	}
	if prev < 1 {
		prev = 1
	}
	f.enter(prev)
	return Transition{From: from, To: f.step}
}

// Progress is the completed share of the question list, in percent.
func (f *Flow) Progress() int {
	if len(f.questions) == 0 {
		return 100
	}
	step := f.step
	if step > len(f.questions) {
		step = len(f.questions)
	}
	return int(math.Round(float64(step) / float64(len(f.questions)) * 100))
}

func (f *Flow) Section() Section {
	return SectionFor(f.step, len(f.questions))
}

// MissingAnswers lists required, visible questions without a valid answer.
func (f *Flow) MissingAnswers() []string {
	return missingAnswers(f.questions, f.responses)
}

// MissingAnswers checks responses against the default question set.
func MissingAnswers(responses models.AssessmentResponses) []string {
	return missingAnswers(eligibilityQuestions, responses)
}

func missingAnswers(questions []models.Question, responses models.AssessmentResponses) []string {
	var missing []string
	for _, q := range questions {
		if !q.Required || ShouldSkip(q, responses) {
			continue
		}
		if a, ok := responses[q.ID]; !ok || !q.Accepts(a) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// SingleValueQuestions lists the ids of questions that take one answer.
func SingleValueQuestions() []string {
	var ids []string
	for _, q := range eligibilityQuestions {
		if q.Type != models.QuestionTypeMultiple {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

func (f *Flow) resumeAfterContact() Transition {
	if !f.needsContact {
		return Transition{From: f.step, To: f.step, ReadyToSubmit: f.ReadyToSubmit()}
	}
	f.needsContact = false
	return f.moveForward()
}

func (f *Flow) moveForward() Transition {
	from := f.step
	dwell := f.now().Sub(f.stepStartedAt)
	f.enter(f.firstVisibleFrom(f.step + 1))
	return Transition{
		From:          from,
		To:            f.step,
		Dwell:         dwell,
		ReadyToSubmit: f.ReadyToSubmit(),
	}
}

// firstVisibleFrom scans forward from step and returns len+1 when nothing is left.
func (f *Flow) firstVisibleFrom(step int) int {
	for step <= len(f.questions) && ShouldSkip(f.questions[step-1], f.responses) {
		step++
	}
	return step
}

func (f *Flow) enter(step int) {
	f.step = step
	f.stepStartedAt = f.now()
}

func (f *Flow) answered(q models.Question) bool {
	a, ok := f.responses[q.ID]
	return ok && q.Accepts(a)
}
