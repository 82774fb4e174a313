// Package notify emails a respondent the summary of their assessment.
package notify

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	awsx "eligibility-workers/internal/common/aws"
	"eligibility-workers/internal/common/errors"
	"eligibility-workers/internal/models"
)

// Sender delivers one email and returns the provider's message id.
type Sender interface {
	SendEmail(ctx context.Context, msg awsx.Email) (string, error)
}

// Summary is what the results email shows.
type Summary struct {
	Name        string
	Eligibility models.EligibilityScore
	Matches     []models.ClinicMatchScore
}

var statusHeadlines = map[models.EligibilityStatus]string{
	models.StatusHighlyLikely: "You are highly likely to be eligible",
	models.StatusLikely:       "You are likely to be eligible",
	models.StatusPossible:     "You may be eligible",
	models.StatusEducational:  "Learn more about your options",
}

// Headline is the one-line summary for a status.
func Headline(status models.EligibilityStatus) string {
	if h, ok := statusHeadlines[status]; ok {
		return h
	}
	return statusHeadlines[models.StatusEducational]
}

const textBody = `Hi {{greeting .Name}},

{{headline .Eligibility.Status}} (confidence {{.Eligibility.Confidence}}%).
{{range .Eligibility.Reasoning}}
- {{.}}{{end}}
{{if .Matches}}
Your best matched clinics:
{{range $i, $m := .Matches}}
{{inc $i}}. {{$m.ClinicName}} ({{$m.Percentage}}% match){{range $m.Reasons}}
   - {{.}}{{end}}{{end}}
{{end}}
Next steps:
{{range .Eligibility.RecommendedActions}}
- {{.}}{{end}}
`

const htmlBody = `<h2>Hi {{greeting .Name}},</h2>
<p><strong>{{headline .Eligibility.Status}}</strong> (confidence {{.Eligibility.Confidence}}%)</p>
<ul>{{range .Eligibility.Reasoning}}<li>{{.}}</li>{{end}}</ul>
{{if .Matches}}<h3>Your best matched clinics</h3>
<ol>{{range .Matches}}<li><strong>{{.ClinicName}}</strong> ({{.Percentage}}% match)<ul>{{range .Reasons}}<li>{{.}}</li>{{end}}</ul></li>{{end}}</ol>
{{end}}<h3>Next steps</h3>
<ul>{{range .Eligibility.RecommendedActions}}<li>{{.}}</li>{{end}}</ul>
`

func greeting(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return "there"
}

var (
	textTmpl = texttemplate.Must(texttemplate.New("text").Funcs(texttemplate.FuncMap{
		"greeting": greeting,
		"headline": Headline,
		"inc":      func(i int) int { return i + 1 },
	}).Parse(textBody))

	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Funcs(htmltemplate.FuncMap{
		"greeting": greeting,
		"headline": Headline,
	}).Parse(htmlBody))
)

// Render builds the subject and both bodies.
func Render(s Summary) (subject, text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := textTmpl.Execute(&tb, s); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	if err := htmlTmpl.Execute(&hb, s); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	return "Your eligibility assessment results", tb.String(), hb.String(), nil
}

type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Send renders s and mails it to email. An empty address is a no-op and
// returns sent=false.
func (n *Notifier) Send(ctx context.Context, email string, s Summary) (sent bool, messageID string, err error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, "", nil
	}

	subject, text, html, err := Render(s)
	if err != nil {
		return false, "", errors.NewInternalError(err)
	}

	id, err := n.sender.SendEmail(ctx, awsx.Email{To: email, Subject: subject, Text: text, HTML: html})
	if err != nil {
		return false, "", errors.NewNotificationSendFailedError("email", err)
	}
	return true, id, nil
}
