package notification

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender delivers mail through a plain SMTP relay. A host left empty
// turns the sender into a logged no-op so local setups run without a
// mail server.
type SMTPSender struct {
	host string
	port string
	from string
}

func NewSMTPSender(host, port, from string) *SMTPSender {
	return &SMTPSender{
		host: strings.TrimSpace(host),
		port: strings.TrimSpace(port),
		from: strings.TrimSpace(from),
	}
}

func (s *SMTPSender) SendEmail(to, subject, body string) error {
	if s.host == "" {
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, to, subject, body)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}
