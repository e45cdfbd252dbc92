package utils

import (
	"elearn/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendEmail delivers one HTML email through SendGrid. Without an API key the
// message is logged instead so local setups keep working.
func sendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("[EMAIL] (not sent, no api key) to=%s subject=%q", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("EduFlow", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Failed to send email to %s, response code: %d", toEmail, resp.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A5C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A5C; line-height: 1.6; }
			.content h2 { color: #1B3A5C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #58A6D6; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>EDUFLOW</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 EduFlow. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendEnrollmentEmail confirms a new course enrollment
func SendEnrollmentEmail(email, name, courseName string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">Modules unlock one at a time: finish a video to open the next one. The final quiz unlocks once every module is completed.</div>
		<p>Happy learning!</p>
	`, name, courseName)

	if err := sendEmail(email, name, "Course Enrollment Confirmation - EduFlow", getEmailTemplate("Enrollment Confirmed", body)); err != nil {
		log.Printf("Error sending enrollment email to %s: %v", email, err)
	}
}

// SendQuizResultEmail reports the score of a quiz attempt
func SendQuizResultEmail(email, name, courseName string, score float64, passed bool) {
	verdict := "Unfortunately you did not pass this time. You can retake the quiz whenever you are ready."
	if passed {
		verdict = "Congratulations, you passed! You can now request your completion certificate."
	}

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your quiz result for <strong>%s</strong>:</p>
		<div class="info-box">Score: <strong>%.1f%%</strong></div>
		<p>%s</p>
	`, name, courseName, score, verdict)

	if err := sendEmail(email, name, "Quiz Result - EduFlow", getEmailTemplate("Quiz Result", body)); err != nil {
		log.Printf("Error sending quiz result email to %s: %v", email, err)
	}
}

// SendCertificateEmail notifies the student their certificate was issued
func SendCertificateEmail(email, name, courseName, certNumber string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your completion certificate for <strong>%s</strong> has been issued.</p>
		<div class="info-box">Certificate number: <strong>%s</strong></div>
		<p>You can view it anytime under "My Certificates".</p>
	`, name, courseName, certNumber)

	if err := sendEmail(email, name, "Certificate Issued - EduFlow", getEmailTemplate("Certificate Issued", body)); err != nil {
		log.Printf("Error sending certificate email to %s: %v", email, err)
	}
}

// SendPendingCertificateReminder nudges admins about stale pending requests
func SendPendingCertificateReminder(adminEmail string, pendingCount int64) {
	body := fmt.Sprintf(`
		<p>There are <strong>%d</strong> certificate requests pending for more than 48 hours.</p>
		<p>Please review them in the admin dashboard.</p>
	`, pendingCount)

	if err := sendEmail(adminEmail, "Admin", "Pending Certificate Requests - EduFlow", getEmailTemplate("Pending Certificate Requests", body)); err != nil {
		log.Printf("Error sending pending certificate reminder to %s: %v", adminEmail, err)
	}
}
