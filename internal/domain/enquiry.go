package domain

import (
	"context"
	"strings"
)

// Service types offered on the enquiry form
const (
	ServicePrivateTour     = "Private Tour"
	ServiceMultiDayTour    = "Multi-day Tour"
	ServiceGolfTransfers   = "Golf Transfers"
	ServiceAirportTransfer = "Airport Transfer"
	ServiceExecutive       = "Executive / Corporate"
)

var ServiceTypes = []string{
	ServicePrivateTour,
	ServiceMultiDayTour,
	ServiceGolfTransfers,
	ServiceAirportTransfer,
	ServiceExecutive,
}

// GroupSizes are the bucket labels of the group size selector
var GroupSizes = []string{"1–2", "3–6", "7–12", "13–24", "25+"}

// EnquiryRequest represents a booking enquiry submission
type EnquiryRequest struct {
	Name            string `json:"name" validate:"min=2"`
	Email           string `json:"email" validate:"email"`
	PhoneOrWhatsapp string `json:"phoneOrWhatsapp" validate:"min=5"`
	Country         string `json:"country" validate:"min=2"`
	ServiceType     string `json:"serviceType" validate:"service_type"`
	GroupSize       string `json:"groupSize" validate:"group_size"`
	StartDate       string `json:"startDate" validate:"min=1"`
	EndDate         string `json:"endDate" validate:"min=1"`
	Dates           string `json:"dates,omitempty"`
	PickupLocation  string `json:"pickupLocation" validate:"min=2"`
	Message         string `json:"message" validate:"min=10"`
	Consent         bool   `json:"consent" validate:"eq=true"`
	CompanyWebsite  string `json:"companyWebsite,omitempty"`
	Tour            string `json:"tour,omitempty"`
}

// IsExecutive reports whether the enquiry is for the executive / corporate service
func (r *EnquiryRequest) IsExecutive() bool {
	return r.ServiceType == ServiceExecutive
}

func (r *EnquiryRequest) HasCompanyWebsite() bool {
	return present(r.CompanyWebsite)
}

func (r *EnquiryRequest) HasTour() bool {
	return present(r.Tour)
}

func (r *EnquiryRequest) HasDates() bool {
	return present(r.Dates)
}

// ResolvedDates returns the explicit dates value when given, otherwise the
// non-empty start and end dates joined as a range.
func (r *EnquiryRequest) ResolvedDates() string {
	if r.HasDates() {
		return strings.TrimSpace(r.Dates)
	}
	var parts []string
	for _, d := range []string{r.StartDate, r.EndDate} {
		if present(d) {
			parts = append(parts, strings.TrimSpace(d))
		}
	}
	return strings.Join(parts, " – ")
}

// EnquiryUsecase defines the interface for booking enquiry operations
type EnquiryUsecase interface {
	// SubmitEnquiry validates the enquiry, screens it for spam and notifies the operator
	SubmitEnquiry(ctx context.Context, req *EnquiryRequest, meta SubmissionMeta) error
}
