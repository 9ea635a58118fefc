package domain

import (
	"strings"

	"atlantic-drive-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var formMessages = map[string]string{
	"ContactRequest.name":    "Please enter your name.",
	"ContactRequest.email":   "Please enter a valid email.",
	"ContactRequest.message": "Please enter your message.",

	"EnquiryRequest.name":            "Please enter your name.",
	"EnquiryRequest.email":           "Please enter a valid email.",
	"EnquiryRequest.phoneOrWhatsapp": "Please enter a phone or WhatsApp number.",
	"EnquiryRequest.country":         "Please enter your country.",
	"EnquiryRequest.serviceType":     "Please choose a service type.",
	"EnquiryRequest.groupSize":       "Please choose a group size.",
	"EnquiryRequest.startDate":       "Please select start date.",
	"EnquiryRequest.endDate":         "Please select end date.",
	"EnquiryRequest.pickupLocation":  "Please enter a pickup location.",
	"EnquiryRequest.message":         "Please share a few details.",
	"EnquiryRequest.consent":         "You must consent to be contacted to continue.",
	"EnquiryRequest.companyWebsite":  "Company website is required for executive bookings.",
	"EnquiryRequest.dates":           "Please enter your travel dates.",
	"EnquiryRequest.tour":            "Please enter a valid tour.",
	"ContactRequest.phone":           "Please enter a valid phone number.",
}

// NewValidator returns the validator for contact and enquiry submissions,
// including the executive company website rule.
func NewValidator() *validator.Validate {
	v := validation.New()
	_ = validation.RegisterEnum(v, "service_type", ServiceTypes)
	_ = validation.RegisterEnum(v, "group_size", GroupSizes)
	v.RegisterStructValidation(enquiryStructLevel, EnquiryRequest{})
	validation.RegisterMessages(formMessages)
	return v
}

// enquiryStructLevel runs after the field validators, so field errors are reported first
func enquiryStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(EnquiryRequest)
	if req.ServiceType == ServiceExecutive && strings.TrimSpace(req.CompanyWebsite) == "" {
		sl.ReportError(req.CompanyWebsite, "companyWebsite", "CompanyWebsite", "company_website_required", "")
	}
}
