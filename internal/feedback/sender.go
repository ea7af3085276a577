package feedback

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/shialibrary/hadith-server/internal/config"
)

// Sender delivers a relayed feedback email.
type Sender interface {
	Send(to, replyTo, subject, body string) error
}

// ConsoleSender logs instead of sending, for development setups with no SMTP
// credentials.
type ConsoleSender struct{}

func (s *ConsoleSender) Send(to, replyTo, subject, body string) error {
	log.Printf("=== MOCK EMAIL ===\nTo: %s\nReply-To: %s\nSubject: %s\n%s==================", to, replyTo, subject, body)
	return nil
}

// SMTPSender sends mail through a configured SMTP relay.
type SMTPSender struct {
	config config.Feedback
}

func NewSMTPSender(cfg config.Feedback) *SMTPSender {
	return &SMTPSender{config: cfg}
}

func (s *SMTPSender) Send(to, replyTo, subject, body string) error {
	auth := smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPassword, s.config.SMTPHost)
	address := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)

	headers := fmt.Sprintf("To: %s\r\n"+
		"From: \"Shia Library\" <%s>\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n", to, s.config.From, subject)
	if replyTo != "" {
		headers += fmt.Sprintf("Reply-To: %s\r\n", replyTo)
	}
	msg := []byte(headers + "\r\n" + body)

	if err := smtp.SendMail(address, auth, s.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NewSender picks the SMTP sender when a host is configured, the console
// sender otherwise.
func NewSender(cfg config.Feedback) Sender {
	if cfg.SMTPHost != "" {
		return NewSMTPSender(cfg)
	}
	return &ConsoleSender{}
}

// Service validates messages, picks the recipient, and hands the rendered
// email to the sender.
type Service struct {
	sender Sender
	config config.Feedback
}

// NewService creates a feedback relay service.
func NewService(sender Sender, cfg config.Feedback) *Service {
	return &Service{sender: sender, config: cfg}
}

// Recipient returns the inbox a message routes to.
func (s *Service) Recipient(messageType string) string {
	if messageType == TypeAbout {
		return s.config.AboutEmail
	}
	return s.config.FeedbackEmail
}

// Relay validates and sends a message.
func (s *Service) Relay(msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	return s.sender.Send(s.Recipient(msg.Type), msg.Feedback.Email, Subject, msg.Body())
}
