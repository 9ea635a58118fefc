package domain

import "context"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" validate:"min=10"`
}

// HasPhone reports whether the optional phone number was supplied
func (r *ContactRequest) HasPhone() bool {
	return present(r.Phone)
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact validates the contact form and notifies the operator
	SubmitContact(ctx context.Context, req *ContactRequest, meta SubmissionMeta) error
}
