// internal/pkg/email/mailer.go
package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/contact"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Mailer sends transactional notifications over SMTP. When email is
// disabled in config every send becomes a logged no-op, so callers never
// need to branch on it.
type Mailer struct {
	config *config.Config
	log    *logrus.Logger
}

// NewMailer creates a new mailer
func NewMailer(cfg *config.Config, log *logrus.Logger) *Mailer {
	return &Mailer{config: cfg, log: log}
}

// SendOrderConfirmation notifies the buyer and the admin inbox about a new
// order
func (m *Mailer) SendOrderConfirmation(o *order.Order) error {
	subject := fmt.Sprintf("Order received — %s", o.ID)

	var body bytes.Buffer
	fmt.Fprintf(&body, "<h2>Thank you for your order, %s</h2>", o.FullName)
	fmt.Fprintf(&body, "<p>Order reference: %s</p>", o.ID)
	body.WriteString("<table border=\"0\" cellpadding=\"4\">")
	for _, item := range o.Items {
		fmt.Fprintf(&body, "<tr><td>%s</td><td>x%d</td><td>%.2f</td></tr>",
			item.Title, item.Quantity, item.Price)
	}
	body.WriteString("</table>")
	fmt.Fprintf(&body, "<p><strong>Total: %.2f</strong></p>", o.TotalAmount)
	fmt.Fprintf(&body, "<p>Delivery: %s, %s</p>", o.Address, o.City)

	recipients := []string{o.UserEmail}
	if m.config.Email.AdminTo != "" {
		recipients = append(recipients, m.config.Email.AdminTo)
	}
	return m.send(recipients, subject, body.String())
}

// SendContactNotification forwards a new contact request to the admin inbox
func (m *Mailer) SendContactNotification(r *contact.Request) error {
	if m.config.Email.AdminTo == "" {
		return nil
	}

	subject := fmt.Sprintf("New contact request from %s", r.Name)

	var body bytes.Buffer
	fmt.Fprintf(&body, "<h2>New contact request</h2>")
	fmt.Fprintf(&body, "<p><strong>Name:</strong> %s</p>", r.Name)
	fmt.Fprintf(&body, "<p><strong>Email:</strong> %s</p>", r.Email)
	if r.Phone != "" {
		fmt.Fprintf(&body, "<p><strong>Phone:</strong> %s</p>", r.Phone)
	}
	if r.ServiceType != "" {
		fmt.Fprintf(&body, "<p><strong>Service:</strong> %s</p>", r.ServiceType)
	}
	fmt.Fprintf(&body, "<p>%s</p>", r.Message)

	return m.send([]string{m.config.Email.AdminTo}, subject, body.String())
}

func (m *Mailer) send(to []string, subject, htmlBody string) error {
	if !m.config.Email.Enabled {
		m.log.WithField("subject", subject).Debug("Email disabled, skipping send")
		return nil
	}
	if m.config.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host")
	}

	from := m.config.Email.FromEmail
	if m.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.config.Email.FromName, m.config.Email.FromEmail)
	}

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ", "),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"utf-8\"",
	}

	var msg bytes.Buffer
	for key, value := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", key, value)
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", m.config.Email.SMTPUser, m.config.Email.SMTPPass, m.config.Email.SMTPHost)
	addr := fmt.Sprintf("%s:%d", m.config.Email.SMTPHost, m.config.Email.SMTPPort)

	if err := smtp.SendMail(addr, auth, m.config.Email.FromEmail, to, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"subject": subject,
		"to":      to,
	}).Info("Email sent")
	return nil
}
