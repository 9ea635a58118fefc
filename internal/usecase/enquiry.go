package usecase

import (
	"context"
	"fmt"
	"strings"

	"atlantic-drive-backend/internal/domain"
	"atlantic-drive-backend/pkg/email"
	"atlantic-drive-backend/pkg/metrics"
)

type enquiryUsecase struct {
	intake
}

// NewEnquiryUsecase creates a new booking enquiry usecase
func NewEnquiryUsecase(deps IntakeDeps) domain.EnquiryUsecase {
	return &enquiryUsecase{intake: newIntake(deps)}
}

// SubmitEnquiry validates the enquiry and screens it for spam before the
// client's submission budget is charged, then notifies the operator
func (uc *enquiryUsecase) SubmitEnquiry(ctx context.Context, req *domain.EnquiryRequest, meta domain.SubmissionMeta) error {
	flow := string(domain.FlowEnquiry)

	if err := uc.checkFields(ctx, flow, req); err != nil {
		return err
	}
	uc.log.ValidationOK(ctx, flow, map[string]bool{
		"companyWebsite": req.HasCompanyWebsite(),
		"dates":          req.HasDates(),
		"tour":           req.HasTour(),
	})

	// Spam never reaches the limiter
	if spam, reason := IsSpam(req); spam {
		uc.log.SpamRejected(ctx, flow, reason)
		metrics.RecordSubmission(flow, metrics.OutcomeSpam)
		return domain.ErrSpamDetected
	}

	if err := uc.checkRateLimit(ctx, flow, meta); err != nil {
		return err
	}

	msg, err := uc.composer.Enquiry(email.EnquiryEmailData{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		PhoneOrWhatsapp: strings.TrimSpace(req.PhoneOrWhatsapp),
		Country:         strings.TrimSpace(req.Country),
		ServiceType:     req.ServiceType,
		GroupSize:       req.GroupSize,
		Dates:           req.ResolvedDates(),
		PickupLocation:  strings.TrimSpace(req.PickupLocation),
		Message:         strings.TrimSpace(req.Message),
		CompanyWebsite:  strings.TrimSpace(req.CompanyWebsite),
		Tour:            strings.TrimSpace(req.Tour),
		ClientIP:        meta.ClientIP,
		UserAgent:       meta.UserAgent,
		SubmittedAt:     uc.submittedAt(meta),
	})
	if err != nil {
		return uc.unexpected(ctx, flow, fmt.Errorf("failed to compose enquiry email: %w", err))
	}

	return uc.deliver(ctx, flow, msg)
}
