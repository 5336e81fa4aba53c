package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendTemporaryPasswordEmail mails the one-time password issued by the
// forgot-password flow
func SendTemporaryPasswordEmail(to, firstName, tempPassword string) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your CampusRide Temporary Password")

	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>You asked to reset your CampusRide password. Use the temporary password below to log in:</p>
		<h1 style="color: #4CAF50; font-size: 32px; letter-spacing: 5px;">%s</h1>
		<p>This password is valid for 24 hours and can be used once.</p>
		<p>If you didn't request a reset, please ignore this email.</p>
	`, firstName, tempPassword)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
