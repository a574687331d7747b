package services

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// EmailService delivers transactional mail, currently just OTP codes.
type EmailService interface {
	SendEmail(to, subject, msg string) error
}

type emailService struct {
	host string
	port int
	from string
}

// NewEmailService reads the SMTP_* environment config. Host and port fall
// back to a local relay when unset.
func NewEmailService() EmailService {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "localhost"
	}
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			log.Warn().Str("port", v).Msg("Invalid SMTP_PORT, using 587")
		} else {
			port = p
		}
	}
	return &emailService{
		host: host,
		port: port,
		from: os.Getenv("SMTP_USERNAME"),
	}
}

func (e *emailService) SendEmail(to, subject, msg string) error {
	m := gomail.NewMessage()

	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", msg)

	d := gomail.NewDialer(e.host, e.port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))

	if err := d.DialAndSend(m); err != nil {
		return err
	}
	return nil
}
