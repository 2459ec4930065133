package service

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"zkpark/internal/entities"
)

//go:embed templates/reservation_email.html
var reservationEmailHTML string

var reservationEmailTmpl = template.Must(template.New("reservation_email").Parse(reservationEmailHTML))

// Notifier tells a user their booking went through.
type Notifier interface {
	SendReservationEmail(data entities.ReservationEmailData)
}

type SenderService struct {
	fromEmail string
	fromName  string
	send      func(*mail.SGMailV3) error
}

// NewSenderService returns a sender that only logs when apiKey or fromEmail is empty.
func NewSenderService(apiKey, fromEmail, fromName string) *SenderService {
	s := &SenderService{fromEmail: fromEmail, fromName: fromName}
	if apiKey != "" && fromEmail != "" {
		client := sendgrid.NewSendClient(apiKey)
		s.send = func(m *mail.SGMailV3) error {
			resp, err := client.Send(m)
			if err != nil {
				return fmt.Errorf("sendgrid send failed: %w", err)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
			}
			return nil
		}
	}
	return s
}

// BuildReservationEmail renders the confirmation message.
func BuildReservationEmail(data entities.ReservationEmailData) (subject, plain, html string, err error) {
	subject = fmt.Sprintf("Your ZKpark reservation is confirmed - Session: %s", data.SessionID)
	plain = fmt.Sprintf(
		"Hello %s,\n\nYour parking reservation is confirmed.\n\n"+
			"Reservation Details:\n"+
			"Session: %s\n"+
			"Spot: %s\n"+
			"Vehicle: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n"+
			"Total: $%s\n\n"+
			"Thank you for choosing ZKpark.\n\n"+
			"%d ZKpark. All rights reserved.",
		data.UserName, data.SessionID, data.SpotTitle, data.Vehicle, data.Date,
		data.FromTime, data.ToTime, data.TotalFee, data.CurrentYear,
	)

	var buf bytes.Buffer
	if err = reservationEmailTmpl.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("error rendering reservation email: %w", err)
	}
	return subject, plain, buf.String(), nil
}

// SendReservationEmail sends in the background; failures are only logged.
func (s *SenderService) SendReservationEmail(data entities.ReservationEmailData) {
	if s.send == nil {
		log.Printf("WARNING: SendGrid is not configured, skipping confirmation email for session %s", data.SessionID)
		return
	}
	subject, plain, html, err := BuildReservationEmail(data)
	if err != nil {
		log.Printf("ALERT: %v", err)
		return
	}
	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromEmail),
		subject,
		mail.NewEmail(data.UserName, data.UserEmail),
		plain,
		html,
	)

	go func(sessionID string) {
		if err := s.send(message); err != nil {
			log.Printf("ALERT (async): confirmation email for session %s failed: %v", sessionID, err)
			return
		}
		log.Printf("Confirmation email sent to %s for session %s", data.UserEmail, sessionID)
	}(data.SessionID)
}
