package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers one message to one address.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// LogSender only logs the message. Used when MAIL_SEND_ENABLED=false.
type LogSender struct {
	Logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{Logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, text, _ string) error {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug(text)
		s.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail sending disabled; message logged")
	}
	return nil
}
