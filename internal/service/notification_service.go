package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lshigami/Nihongo/config"
	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/fx"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
	sendTimeout      = 10 * time.Second
)

// GradeNotification is sent to a student once their answer has been graded.
type GradeNotification struct {
	StudentEmail string
	QuizTitle    string
	Score        float64
	TotalPoints  float64
	Percentage   int
	Passed       bool
	Feedback     string
	Regrade      bool
}

type NotificationService interface {
	// NotifyGraded never blocks the caller; delivery failures are only logged.
	NotifyGraded(n GradeNotification)
	// Close waits for notifications still being delivered.
	Close(ctx context.Context) error
}

// NewNotificationService falls back to logging when SendGrid is not configured.
func NewNotificationService(cfg *config.Config) NotificationService {
	if cfg.Mail.SendgridApiKey == "" {
		log.Warn().Msg("SENDGRID_API_KEY is not set. Grade notifications will only be logged.")
		return logNotifier{}
	}
	return &sendgridNotifier{
		key:     cfg.Mail.SendgridApiKey,
		from:    sgmail.NewEmail(cfg.Mail.FromName, cfg.Mail.FromEmail),
		deliver: sendgrid.MakeRequestWithContext,
	}
}

// RegisterNotificationService drains pending deliveries on shutdown.
func RegisterNotificationService(lc fx.Lifecycle, n NotificationService) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Waiting for pending grade notifications...")
			return n.Close(ctx)
		},
	})
}

type logNotifier struct{}

func (logNotifier) NotifyGraded(n GradeNotification) {
	log.Info().Str("to", n.StudentEmail).Str("quiz", n.QuizTitle).Int("percentage", n.Percentage).Msg("Grade notification (not sent)")
}

func (logNotifier) Close(context.Context) error { return nil }

type sendgridNotifier struct {
	key     string
	from    *sgmail.Email
	deliver func(ctx context.Context, req rest.Request) (*rest.Response, error)
	pending sync.WaitGroup
}

func (s *sendgridNotifier) NotifyGraded(n GradeNotification) {
	if n.StudentEmail == "" {
		log.Warn().Str("quiz", n.QuizTitle).Msg("Skipping grade notification: student has no email")
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.send(n)
	}()
}

func (s *sendgridNotifier) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Msg("Gave up waiting for grade notifications")
		return ctx.Err()
	}
}

func (s *sendgridNotifier) prepare(n GradeNotification) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = gradeSubject(n)
	p.AddTos(sgmail.NewEmail("", n.StudentEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", gradeBody(n)))
	return m
}

func (s *sendgridNotifier) send(n GradeNotification) {
	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(n))

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	res, err := s.deliver(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("to", n.StudentEmail).Msg("Sending grade notification failed")
		return
	}
	if res.StatusCode >= http.StatusBadRequest {
		log.Error().Int("status", res.StatusCode).Str("body", res.Body).Msg("SendGrid rejected grade notification")
	}
}

func gradeSubject(n GradeNotification) string {
	if n.Regrade {
		return fmt.Sprintf("Your grade for %q was updated", n.QuizTitle)
	}
	return fmt.Sprintf("Your answer to %q has been graded", n.QuizTitle)
}

func gradeBody(n GradeNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %.2f / %.2f (%d%%)\n", n.Score, n.TotalPoints, n.Percentage)
	if n.Passed {
		b.WriteString("Result: passed\n")
	} else {
		b.WriteString("Result: not passed\n")
	}
	if strings.TrimSpace(n.Feedback) != "" {
		b.WriteString("\nFeedback:\n")
		b.WriteString(n.Feedback)
		b.WriteString("\n")
	}
	return b.String()
}
