package utils

import (
	"coursestore/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendEmail delivers a single HTML email through SendGrid. Skipped when
// no API key is configured (local development).
func sendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("Email skipped (no SENDGRID_API_KEY): %s -> %s", subject, toEmail)
		return nil
	}

	from := sgmail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
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

// SendOrderReceivedEmail confirms that an order entered review.
func SendOrderReceivedEmail(email, userName, orderNumber string, total int64) error {
	subject := "Order Received - " + config.AppConfig.AppName

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Order Received</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">We received your order <b>%s</b> (total %d). Your payment proof is being reviewed and your courses will unlock once an administrator approves it.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">%s Team</p>
				</div>
			</body>
		</html>
	`, userName, orderNumber, total, config.AppConfig.AppName)

	return sendEmail(email, userName, subject, body)
}

// SendOrderStatusEmail notifies the student of an approval decision.
func SendOrderStatusEmail(email, userName, orderNumber, newStatus string) error {
	subject := "Order Update - " + config.AppConfig.AppName

	var line string
	switch newStatus {
	case "APPROVED":
		line = "Your payment has been verified and your courses are now unlocked. Happy learning!"
	case "REJECTED":
		line = "Unfortunately we could not verify your payment. Please contact support or place a new order."
	default:
		line = "Your order has been moved back to review. Course access is paused until it is approved again."
	}

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Order %s</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Order <b>%s</b> is now <b>%s</b>.</p>
					<p style="font-size: 14px; color: #666666;">%s</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">%s Team</p>
				</div>
			</body>
		</html>
	`, newStatus, userName, orderNumber, newStatus, line, config.AppConfig.AppName)

	return sendEmail(email, userName, subject, body)
}

// SendBadgeEmail congratulates a student on a milestone badge.
func SendBadgeEmail(email, userName, courseName string, threshold int) error {
	subject := fmt.Sprintf("%d%% Milestone Reached - %s", threshold, config.AppConfig.AppName)

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">🏅 Milestone Reached!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">You just crossed <b>%d%%</b> of:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">A new badge has been added to your profile. Keep going!</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">%s Team</p>
				</div>
			</body>
		</html>
	`, userName, threshold, courseName, config.AppConfig.AppName)

	return sendEmail(email, userName, subject, body)
}
