package usecase

import (
	"context"
	"fmt"
	"time"

	"atlantic-drive-backend/internal/domain"
	"atlantic-drive-backend/pkg/email"
	"atlantic-drive-backend/pkg/metrics"
	"atlantic-drive-backend/pkg/ratelimit"
	"atlantic-drive-backend/pkg/submissionlog"
	"atlantic-drive-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// SubmissionLimiter caps accepted submissions per client
type SubmissionLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// Mailer delivers composed notifications
type Mailer interface {
	MissingConfig() []string
	DevFallback() bool
	ProviderName() string
	Dispatch(ctx context.Context, msg email.Message) email.DeliveryResult
}

// IntakeDeps are the collaborators shared by the contact and enquiry usecases
type IntakeDeps struct {
	Validate *validator.Validate
	Limiter  SubmissionLimiter
	Composer *email.Composer
	Mailer   Mailer
	Log      *submissionlog.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

// intake holds the pipeline stages both submission kinds go through
type intake struct {
	validate *validator.Validate
	limiter  SubmissionLimiter
	composer *email.Composer
	mailer   Mailer
	log      *submissionlog.Logger
	now      func() time.Time
}

func newIntake(deps IntakeDeps) intake {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Log
	if log == nil {
		log = submissionlog.New(nil, nil)
	}
	return intake{
		validate: deps.Validate,
		limiter:  deps.Limiter,
		composer: deps.Composer,
		mailer:   deps.Mailer,
		log:      log,
		now:      now,
	}
}

// checkFields validates req and returns the first violated field
func (i *intake) checkFields(ctx context.Context, flow string, req interface{}) error {
	err := i.validate.Struct(req)
	if err == nil {
		return nil
	}
	fe := validation.FirstError(err)
	i.log.ValidationFailed(ctx, flow, fe.Field, fe.Message)
	metrics.RecordSubmission(flow, metrics.OutcomeValidationError)
	return fe
}

// checkRateLimit charges one submission to the client's budget
func (i *intake) checkRateLimit(ctx context.Context, flow string, meta domain.SubmissionMeta) error {
	key := meta.ClientIP
	if key == "" {
		key = domain.UnknownClient
	}

	decision, err := i.limiter.Allow(ctx, key)
	if err != nil {
		return i.unexpected(ctx, flow, fmt.Errorf("rate limit check failed: %w", err))
	}
	if !decision.Allowed {
		i.log.RateLimited(ctx, flow, meta.IsLocalClient())
		metrics.RecordSubmission(flow, metrics.OutcomeRateLimited)
		retryAfter := decision.ResetAt.Sub(i.now())
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return &domain.RateLimitedError{RetryAfter: retryAfter}
	}
	return nil
}

// deliver sends msg once, or takes the dev fallback when delivery is not configured
func (i *intake) deliver(ctx context.Context, flow string, msg email.Message) error {
	if missing := i.mailer.MissingConfig(); len(missing) > 0 {
		return i.skipped(ctx, flow, missing)
	}

	i.log.SendStart(ctx, flow, i.mailer.ProviderName())
	result := i.mailer.Dispatch(ctx, msg)

	switch result.Status {
	case email.StatusSent:
		i.log.SendOK(ctx, flow, result.MessageID)
		metrics.RecordSubmission(flow, metrics.OutcomeSent)
		return nil
	case email.StatusSkipped:
		return i.skipped(ctx, flow, result.Missing)
	default:
		i.log.SendError(ctx, flow, result.Err.Error(), result.ErrorCode)
		metrics.RecordSubmission(flow, metrics.OutcomeSendError)
		return fmt.Errorf("%w: %v", domain.ErrEmailDeliveryFailed, result.Err)
	}
}

func (i *intake) skipped(ctx context.Context, flow string, missing []string) error {
	fallback := i.mailer.DevFallback()
	i.log.EnvMissing(ctx, flow, missing, fallback)
	if fallback {
		metrics.RecordSubmission(flow, metrics.OutcomeSkipped)
		return nil
	}
	metrics.RecordSubmission(flow, metrics.OutcomeError)
	return domain.ErrEmailNotConfigured
}

func (i *intake) unexpected(ctx context.Context, flow string, err error) error {
	i.log.UnexpectedError(ctx, flow, err)
	metrics.RecordSubmission(flow, metrics.OutcomeError)
	return err
}

func (i *intake) submittedAt(meta domain.SubmissionMeta) time.Time {
	if meta.SubmittedAt.IsZero() {
		return i.now()
	}
	return meta.SubmittedAt
}
