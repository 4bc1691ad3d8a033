package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAssessmentReport(toEmail, sessionID, verdict string, metrics map[string]float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendAssessmentReport(toEmail, sessionID, verdict string, metrics map[string]float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Lifting Task Assessment Report")

	color := "#4CAF50"
	if verdict != "SAFE" {
		color = "#D32F2F"
	}

	metricRows := ""
	for k, v := range metrics {
		metricRows += fmt.Sprintf(`<tr><td style="padding: 4px 12px;">%s</td><td style="padding: 4px 12px;">%.3f</td></tr>`, k, v)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Assessment Complete</h2>
			<p>Session <code>%s</code> finished with verdict:</p>
			<h1 style="color: %s;">%s</h1>
			<table style="border-collapse: collapse;">%s</table>
			<p>Log in to review the motion playback and full details.</p>
		</div>
	`, sessionID, color, verdict, metricRows)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send assessment report to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Assessment report sent to %s\n", toEmail)
	return nil
}
