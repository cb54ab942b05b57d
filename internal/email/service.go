package email

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/pkg/logger"
)

// Sender delivers booking notification email.
type Sender interface {
	SendBookingEvent(event *model.BookingEvent) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type smtpSender struct {
	dialer *gomail.Dialer
	config Config
	logger *logger.Logger
}

func NewSMTPSender(cfg Config, log *logger.Logger) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		config: cfg,
		logger: log,
	}
}

var subjects = map[string]string{
	model.EventBookingCreated:   "We received your booking",
	model.EventBookingConfirmed: "Your booking is confirmed",
	model.EventBookingCompleted: "Thank you for your visit",
	model.EventBookingCancelled: "Your booking was cancelled",
}

var bodyTemplate = template.Must(template.New("booking").Parse(`
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Hello {{.CustomerName}},</h2>
  <p>{{.Lead}}</p>
  <table cellpadding="6">
    <tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
    <tr><td><strong>Time</strong></td><td>{{.Time}}</td></tr>
    {{if .Stylist}}<tr><td><strong>Stylist</strong></td><td>{{.Stylist}}</td></tr>{{end}}
    <tr><td><strong>Services</strong></td><td>{{.Services}}</td></tr>
    <tr><td><strong>Total</strong></td><td>{{.Total}}</td></tr>
  </table>
  <p>We look forward to seeing you.</p>
</body>
</html>
`))

var leads = map[string]string{
	model.EventBookingCreated:   "Your booking request has been received and is awaiting confirmation.",
	model.EventBookingConfirmed: "Your booking has been confirmed. See you soon!",
	model.EventBookingCompleted: "Thank you for visiting us. Your loyalty points have been credited.",
	model.EventBookingCancelled: "Your booking has been cancelled.",
}

func (s *smtpSender) SendBookingEvent(event *model.BookingEvent) error {
	subject, ok := subjects[event.Type]
	if !ok {
		return fmt.Errorf("unknown booking event type: %s", event.Type)
	}

	body, err := s.renderBody(event)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.config.From, s.config.FromName)
	msg.SetAddressHeader("To", event.CustomerEmail, event.CustomerName)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", event.CustomerEmail, err)
	}
	s.logger.Info("booking email sent", "to", event.CustomerEmail, "type", event.Type)
	return nil
}

func (s *smtpSender) renderBody(event *model.BookingEvent) (string, error) {
	services := ""
	for i, name := range event.Services {
		if i > 0 {
			services += ", "
		}
		services += name
	}

	var stylist string
	if event.StylistName != nil {
		stylist = *event.StylistName
	}

	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, map[string]interface{}{
		"CustomerName": event.CustomerName,
		"Lead":         leads[event.Type],
		"Date":         event.BookingDate.Format("Monday, 2 January 2006"),
		"Time":         event.StartTime,
		"Stylist":      stylist,
		"Services":     services,
		"Total":        fmt.Sprintf("%.0f", event.TotalPrice),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return buf.String(), nil
}
