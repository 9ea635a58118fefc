package domain

import (
	"errors"
	"strings"
	"time"
)

// Flow names a submission kind. It appears in logs, metrics and email subjects.
type Flow string

const (
	FlowContact Flow = "contact"
	FlowEnquiry Flow = "enquiry"
)

// UnknownClient is the rate limit key used when no client address can be derived.
// Every such client shares one budget.
const UnknownClient = "unknown"

var (
	ErrSpamDetected        = errors.New("submission matched spam signature")
	ErrRateLimited         = errors.New("submission rate limit exceeded")
	ErrEmailNotConfigured  = errors.New("email delivery is not configured")
	ErrEmailDeliveryFailed = errors.New("email delivery failed")
)

// SubmissionMeta is request metadata captured alongside a submission.
type SubmissionMeta struct {
	ClientIP    string
	UserAgent   string
	SubmittedAt time.Time
}

// IsLocalClient reports whether the client address is a loopback address.
func (m SubmissionMeta) IsLocalClient() bool {
	switch m.ClientIP {
	case "::1", "127.0.0.1", "localhost":
		return true
	}
	return false
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// RateLimitedError is returned when a client has used its submission budget.
// It matches ErrRateLimited with errors.Is.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return ErrRateLimited.Error()
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
