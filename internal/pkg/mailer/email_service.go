// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSessionBooked(toEmail, therapistName, date, timeOfDay string) error
	SendSessionCancelled(toEmail, date, timeOfDay string, fee float64) error
	SendTherapistActivated(toEmail string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}
	return nil
}

func (s *emailService) SendSessionBooked(toEmail, therapistName, date, timeOfDay string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Session Confirmed</h2>
			<p>Your session with %s is booked for:</p>
			<h3>%s at %s</h3>
			<p>You will receive a meeting link before the session starts.</p>
		</div>
	`, therapistName, date, timeOfDay)

	return s.send(toEmail, "Your session is booked", body)
}

func (s *emailService) SendSessionCancelled(toEmail, date, timeOfDay string, fee float64) error {
	feeLine := ""
	if fee > 0 {
		feeLine = fmt.Sprintf("<p>A cancellation fee of $%.2f applies.</p>", fee)
	}
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Session Cancelled</h2>
			<p>Your session on %s at %s has been cancelled.</p>
			%s
		</div>
	`, date, timeOfDay, feeLine)

	return s.send(toEmail, "Your session was cancelled", body)
}

func (s *emailService) SendTherapistActivated(toEmail string) error {
	body := `
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your profile is live</h2>
			<p>All required compliance documents have been verified and your
			profile is now visible to clients.</p>
		</div>
	`

	return s.send(toEmail, "Your therapist profile is active", body)
}
