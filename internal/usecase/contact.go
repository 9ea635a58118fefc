package usecase

import (
	"context"
	"fmt"
	"strings"

	"atlantic-drive-backend/internal/domain"
	"atlantic-drive-backend/pkg/email"
)

type contactUsecase struct {
	intake
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(deps IntakeDeps) domain.ContactUsecase {
	return &contactUsecase{intake: newIntake(deps)}
}

// SubmitContact validates the contact request, charges the client's
// submission budget and sends the notification email
func (uc *contactUsecase) SubmitContact(ctx context.Context, req *domain.ContactRequest, meta domain.SubmissionMeta) error {
	flow := string(domain.FlowContact)

	if err := uc.checkFields(ctx, flow, req); err != nil {
		return err
	}
	uc.log.ValidationOK(ctx, flow, map[string]bool{
		"phone": req.HasPhone(),
	})

	if err := uc.checkRateLimit(ctx, flow, meta); err != nil {
		return err
	}

	msg, err := uc.composer.Contact(email.ContactEmailData{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Message:     strings.TrimSpace(req.Message),
		ClientIP:    meta.ClientIP,
		SubmittedAt: uc.submittedAt(meta),
	})
	if err != nil {
		return uc.unexpected(ctx, flow, fmt.Errorf("failed to compose contact email: %w", err))
	}

	return uc.deliver(ctx, flow, msg)
}
