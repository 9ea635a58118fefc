package v1

import (
	"errors"
	"net/http"
	"time"

	"atlantic-drive-backend/internal/delivery/http/middleware"
	"atlantic-drive-backend/internal/domain"
	"atlantic-drive-backend/pkg/apperror"
	"atlantic-drive-backend/pkg/metrics"
	"atlantic-drive-backend/pkg/submissionlog"
	"atlantic-drive-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// submissionBinder decodes form submissions and maps usecase errors to the
// response envelope, logging the stages owned by the transport
type submissionBinder struct {
	log      *submissionlog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// bind logs the start stage and decodes the JSON body into req. It reports
// false after attaching the error to c.
func (b *submissionBinder) bind(c *gin.Context, flow domain.Flow, req interface{}) bool {
	ctx := c.Request.Context()
	b.log.Start(ctx, string(flow))

	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	if typeErr, ok := validation.FromDecodeError(err); ok {
		// the decoder fills the remaining fields, so an earlier invalid field still wins
		fe := validation.Earliest(req, typeErr, validation.FirstError(b.validate.Struct(req)))
		b.log.ValidationFailed(ctx, string(flow), fe.Field, fe.Message)
		metrics.RecordSubmission(string(flow), metrics.OutcomeValidationError)
		c.Error(apperror.BadRequest(fe.Message))
		return false
	}

	b.log.UnexpectedError(ctx, string(flow), err)
	metrics.RecordSubmission(string(flow), metrics.OutcomeError)

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		c.Error(apperror.New(http.StatusRequestEntityTooLarge, apperror.MsgInvalidRequest, nil))
		return false
	}
	c.Error(apperror.BadRequest(apperror.MsgInvalidRequest))
	return false
}

func (b *submissionBinder) meta(c *gin.Context) domain.SubmissionMeta {
	return domain.SubmissionMeta{
		ClientIP:    middleware.ClientIdentifier(c.Request),
		UserAgent:   c.GetHeader("User-Agent"),
		SubmittedAt: b.now(),
	}
}

// fail translates a usecase error into the caller-facing error
func (b *submissionBinder) fail(c *gin.Context, err error) {
	var fieldErr *validation.FieldError
	var rateErr *domain.RateLimitedError

	switch {
	case errors.As(err, &fieldErr):
		c.Error(apperror.BadRequest(fieldErr.Message))
	case errors.Is(err, domain.ErrSpamDetected):
		c.Error(apperror.BadRequest(apperror.MsgSpamDetected))
	case errors.As(err, &rateErr):
		middleware.SetRetryAfter(c, rateErr.RetryAfter)
		c.Error(apperror.TooManyRequests())
	case errors.Is(err, domain.ErrRateLimited):
		c.Error(apperror.TooManyRequests())
	default:
		// Provider and configuration details stay in the logs
		c.Error(apperror.Internal(err))
	}
}
