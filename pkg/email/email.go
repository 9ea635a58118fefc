package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atlantic-drive-backend/config"
	"atlantic-drive-backend/pkg/metrics"
)

// Env var names reported when delivery configuration is incomplete
const (
	KeyResendAPIKey = "RESEND_API_KEY"
	KeySMTPPassword = "SMTP_PASSWORD"
	KeyEmailTo      = "EMAIL_TO"
	KeyEmailFrom    = "EMAIL_FROM"
)

// Envelope addresses a composed message
type Envelope struct {
	From string
	To   string
}

// Provider delivers a message through a transactional email service.
// It returns the provider-assigned message id when there is one.
type Provider interface {
	Name() string
	Send(ctx context.Context, env Envelope, msg Message) (string, error)
}

// ProviderError is a failure reported by the provider
type ProviderError struct {
	Message    string
	Code       string
	StatusCode int
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// DeliveryStatus is the outcome kind of a dispatch attempt
type DeliveryStatus int

const (
	StatusSent DeliveryStatus = iota
	StatusSkipped
	StatusFailed
)

func (s DeliveryStatus) String() string {
	switch s {
	case StatusSent:
		return "sent"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// DeliveryResult is the outcome of Dispatch: Sent(MessageID), Skipped(Missing) or Failed(Err, ErrorCode)
type DeliveryResult struct {
	Status    DeliveryStatus
	MessageID string
	Missing   []string
	Err       error
	ErrorCode string
}

// EmailService sends composed notifications to the operator's inbox
type EmailService struct {
	provider      Provider
	credentialKey string
	credential    string
	fromEmail     string
	toEmail       string
	devFallback   bool
	now           func() time.Time
}

// NewEmailService creates an email service for the provider selected in cfg
func NewEmailService(cfg *config.Config) *EmailService {
	var provider Provider
	credentialKey, credential := KeyResendAPIKey, cfg.ResendAPIKey

	switch cfg.EmailProvider {
	case config.ProviderSMTP:
		provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		credentialKey, credential = KeySMTPPassword, cfg.SMTPPassword
	default:
		provider = NewResendProvider(cfg.ResendAPIKey)
	}

	return NewEmailServiceWithProvider(provider, credentialKey, credential, cfg.EmailFrom, cfg.EmailTo, cfg.EmailDevFallback)
}

// NewEmailServiceWithProvider creates an email service around an explicit provider
func NewEmailServiceWithProvider(provider Provider, credentialKey, credential, from, to string, devFallback bool) *EmailService {
	return &EmailService{
		provider:      provider,
		credentialKey: credentialKey,
		credential:    credential,
		fromEmail:     from,
		toEmail:       to,
		devFallback:   devFallback,
		now:           time.Now,
	}
}

// MissingConfig lists the env var names of absent delivery settings. Values are never included.
func (s *EmailService) MissingConfig() []string {
	var missing []string
	if s.credential == "" {
		missing = append(missing, s.credentialKey)
	}
	if s.toEmail == "" {
		missing = append(missing, KeyEmailTo)
	}
	if s.fromEmail == "" {
		missing = append(missing, KeyEmailFrom)
	}
	return missing
}

// IsConfigured checks if every delivery setting is present
func (s *EmailService) IsConfigured() bool {
	return len(s.MissingConfig()) == 0
}

// DevFallback reports whether a skipped send counts as success
func (s *EmailService) DevFallback() bool {
	return s.devFallback
}

// ProviderName returns the name of the configured provider
func (s *EmailService) ProviderName() string {
	return s.provider.Name()
}

// Dispatch sends msg exactly once. Incomplete configuration skips the send
// without contacting the provider.
func (s *EmailService) Dispatch(ctx context.Context, msg Message) DeliveryResult {
	if missing := s.MissingConfig(); len(missing) > 0 {
		return DeliveryResult{Status: StatusSkipped, Missing: missing}
	}

	started := s.now()
	id, err := s.provider.Send(ctx, Envelope{From: s.fromEmail, To: s.toEmail}, msg)
	elapsed := s.now().Sub(started).Seconds()

	if err != nil {
		metrics.ObserveEmailSend(s.provider.Name(), "error", elapsed)
		result := DeliveryResult{Status: StatusFailed, Err: err}
		var providerErr *ProviderError
		if errors.As(err, &providerErr) {
			result.ErrorCode = providerErr.Code
		}
		return result
	}

	metrics.ObserveEmailSend(s.provider.Name(), "ok", elapsed)
	return DeliveryResult{Status: StatusSent, MessageID: id}
}
