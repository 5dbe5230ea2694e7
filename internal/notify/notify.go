// Package notify delivers reminder messages to borrowers.
//
// Sender is the port the due-date sweep talks to. LogSender writes messages
// to the process log and is the default; SMTPSender hands them to a mail
// relay.
package notify

import (
	"context"
	"log"
)

// Sender delivers a single message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender prints messages instead of delivering them.
type LogSender struct {
	logger *log.Logger
}

// NewLogSender returns a sender writing to logger, or to the standard logger
// when logger is nil.
func NewLogSender(logger *log.Logger) *LogSender {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Printf("Mail: to=%s subject=%q body=%q", to, subject, body)
	return nil
}
