package mailingservices

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/localfixhq/localfix/config"
	"github.com/localfixhq/localfix/models"
	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends transactional mail. A zero value with an empty client is a
// no-op sender, used when mail is not configured.
type Mailgun struct {
	Client *mailgun.MailgunImpl
	sender string
}

func (m *Mailgun) Init(c *config.Config) {
	if c.MailgunApiKey == "" || c.MgDomain == "" {
		log.Warn("mailgun not configured, status notifications disabled")
		return
	}
	m.Client = mailgun.NewMailgun(c.MgDomain, c.MailgunApiKey)
	m.sender = c.MgEmailFrom
	if m.sender == "" {
		m.sender = fmt.Sprintf("LocalFix <no-reply@%s>", c.MgDomain)
	}
}

// SendStatusUpdate mails the reporter when the status of their report
// changes. Failures are logged, never surfaced; mail is best effort.
func (m *Mailgun) SendStatusUpdate(ctx context.Context, recipient string, report *models.Report, status models.ReportStatus) {
	if m.Client == nil || recipient == "" || recipient == models.AnonymousUserID {
		return
	}

	subject := fmt.Sprintf("Your report %q is now %s", report.Title, status)
	body := fmt.Sprintf(
		"Hi %s,\n\nThe status of your report %q changed to %s.\n\nThanks for helping improve your neighborhood.\nThe LocalFix Team",
		report.UserName, report.Title, status)

	message := m.Client.NewMessage(m.sender, subject, body, recipient)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, _, err := m.Client.Send(ctx, message)
	if err != nil {
		log.WithError(err).WithField("recipient", recipient).Error("failed to send status update mail")
	}
}
