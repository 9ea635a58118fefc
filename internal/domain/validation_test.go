package domain_test

import (
	"testing"

	"atlantic-drive-backend/internal/domain"
	"atlantic-drive-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnquiry() domain.EnquiryRequest {
	return domain.EnquiryRequest{
		Name:            "Aoife Murphy",
		Email:           "aoife@example.com",
		PhoneOrWhatsapp: "+353855550123",
		Country:         "Ireland",
		ServiceType:     domain.ServicePrivateTour,
		GroupSize:       "3–6",
		StartDate:       "2026-06-01",
		EndDate:         "2026-06-03",
		PickupLocation:  "Shannon Airport",
		Message:         "We would love a day on the Wild Atlantic Way.",
		Consent:         true,
	}
}

func TestContactValidation(t *testing.T) {
	v := domain.NewValidator()

	t.Run("valid contact passes", func(t *testing.T) {
		req := domain.ContactRequest{Name: "Al", Email: "a@b.com", Message: "Hello there, testing."}
		assert.NoError(t, v.Struct(&req))
	})

	t.Run("reports only the first failing field", func(t *testing.T) {
		req := domain.ContactRequest{Name: "A", Email: "nope", Message: "short"}
		fe := validation.FirstError(v.Struct(&req))
		require.NotNil(t, fe)
		assert.Equal(t, "name", fe.Field)
		assert.Equal(t, "Please enter your name.", fe.Message)
	})

	t.Run("invalid email", func(t *testing.T) {
		req := domain.ContactRequest{Name: "Al", Email: "not-an-email", Message: "Hello there, testing."}
		fe := validation.FirstError(v.Struct(&req))
		require.NotNil(t, fe)
		assert.Equal(t, "email", fe.Field)
		assert.Equal(t, "Please enter a valid email.", fe.Message)
	})

	t.Run("message shorter than ten characters", func(t *testing.T) {
		req := domain.ContactRequest{Name: "Al", Email: "a@b.com", Message: "Too short"}
		fe := validation.FirstError(v.Struct(&req))
		require.NotNil(t, fe)
		assert.Equal(t, "message", fe.Field)
		assert.Equal(t, "Please enter your message.", fe.Message)
	})
}

func TestEnquiryValidation(t *testing.T) {
	v := domain.NewValidator()

	t.Run("valid enquiry passes", func(t *testing.T) {
		req := validEnquiry()
		assert.NoError(t, v.Struct(&req))
	})

	t.Run("unknown service type", func(t *testing.T) {
		req := validEnquiry()
		req.ServiceType = "Helicopter"
		fe := validation.FirstError(v.Struct(&req))
		require.NotNil(t, fe)
		assert.Equal(t, "serviceType", fe.Field)
	})

	t.Run("group size must be a known bucket", func(t *testing.T) {
		req := validEnquiry()
		req.GroupSize = "3-6" // hyphen, not en dash
		fe := validation.FirstError(v.Struct(&req))
		require.NotNil(t, fe)
		assert.Equal(t, "groupSize", fe.Field)
	})

	t.Run("consent must be true", func(t *testing.T) {
		req := validEnquiry()
		req.Consent = false
		fe := validation.FirstError(v.Struct(&req))
		require.NotNil(t, fe)
		assert.Equal(t, "consent", fe.Field)
		assert.Equal(t, "You must consent to be contacted to continue.", fe.Message)
	})

	for _, website := range []string{"", "   ", "\t\n"} {
		t.Run("executive requires company website "+quote(website), func(t *testing.T) {
			req := validEnquiry()
			req.ServiceType = domain.ServiceExecutive
			req.CompanyWebsite = website
			fe := validation.FirstError(v.Struct(&req))
			require.NotNil(t, fe)
			assert.Equal(t, "companyWebsite", fe.Field)
			assert.Equal(t, "Company website is required for executive bookings.", fe.Message)
		})
	}

	t.Run("executive with company website passes", func(t *testing.T) {
		req := validEnquiry()
		req.ServiceType = domain.ServiceExecutive
		req.CompanyWebsite = "https://acme.example"
		assert.NoError(t, v.Struct(&req))
	})

	t.Run("field errors come before the company website rule", func(t *testing.T) {
		req := validEnquiry()
		req.ServiceType = domain.ServiceExecutive
		req.Consent = false
		fe := validation.FirstError(v.Struct(&req))
		require.NotNil(t, fe)
		assert.Equal(t, "consent", fe.Field)
	})
}

func TestResolvedDates(t *testing.T) {
	req := validEnquiry()
	assert.Equal(t, "2026-06-01 – 2026-06-03", req.ResolvedDates())

	req.Dates = " 1–3 June "
	assert.Equal(t, "1–3 June", req.ResolvedDates())

	req.Dates = "   "
	assert.Equal(t, "2026-06-01 – 2026-06-03", req.ResolvedDates())

	req.Dates = ""
	req.EndDate = " "
	assert.Equal(t, "2026-06-01", req.ResolvedDates())
}

func TestSubmissionMetaIsLocalClient(t *testing.T) {
	assert.True(t, domain.SubmissionMeta{ClientIP: "::1"}.IsLocalClient())
	assert.False(t, domain.SubmissionMeta{ClientIP: "203.0.113.9"}.IsLocalClient())
	assert.False(t, domain.SubmissionMeta{ClientIP: domain.UnknownClient}.IsLocalClient())
}

func quote(s string) string {
	if s == "" {
		return "empty"
	}
	return "blank"
}
