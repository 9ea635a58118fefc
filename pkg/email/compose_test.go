package email

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var submittedAt = time.Date(2026, 10, 16, 14, 5, 9, 120_000_000, time.UTC)

func contactData() ContactEmailData {
	return ContactEmailData{
		Name:        "Al",
		Email:       "a@b.com",
		Message:     "Hello there, testing.",
		ClientIP:    "203.0.113.7",
		SubmittedAt: submittedAt,
	}
}

func enquiryData() EnquiryEmailData {
	return EnquiryEmailData{
		Name:            "Aoife Murphy",
		Email:           "aoife@example.com",
		PhoneOrWhatsapp: "+353855550123",
		Country:         "Ireland",
		ServiceType:     "Private Tour",
		GroupSize:       "3–6",
		Dates:           "2026-06-01 – 2026-06-03",
		PickupLocation:  "Shannon Airport",
		Message:         "Line one\nLine two",
		ClientIP:        "203.0.113.7",
		UserAgent:       "Mozilla/5.0",
		SubmittedAt:     submittedAt,
	}
}

func TestComposeContactText(t *testing.T) {
	msg, err := NewComposer("Atlantic Drive Tours").Contact(contactData())
	require.NoError(t, err)

	assert.Equal(t, "Contact from Al — Atlantic Drive Tours", msg.Subject)
	assert.Equal(t, "a@b.com", msg.ReplyTo)
	assert.Equal(t, strings.Join([]string{
		"Name: Al",
		"Email: a@b.com",
		"Message: Hello there, testing.",
		"Submitted: 2026-10-16T14:05:09.120Z",
		"IP: 203.0.113.7",
	}, "\n"), msg.Text)
	assert.NotContains(t, msg.HTML, "Phone")
}

func TestComposeContactWithPhone(t *testing.T) {
	data := contactData()
	data.Phone = "+353 1 555 0123"

	msg, err := NewComposer("Atlantic Drive Tours").Contact(data)
	require.NoError(t, err)

	assert.Contains(t, msg.Text, "Email: a@b.com\nPhone: +353 1 555 0123\nMessage:")
	assert.Contains(t, msg.HTML, "&#43;353 1 555 0123")
}

func TestComposeEnquiryText(t *testing.T) {
	data := enquiryData()
	data.Tour = "Cliffs of Moher & Bunratty"

	msg, err := NewComposer("Atlantic Drive Tours").Enquiry(data)
	require.NoError(t, err)

	assert.Equal(t, "Enquiry from Aoife Murphy — Atlantic Drive Tours", msg.Subject)
	assert.Equal(t, strings.Join([]string{
		"Name: Aoife Murphy",
		"Email: aoife@example.com",
		"Phone/WhatsApp: +353855550123",
		"Country: Ireland",
		"Service: Private Tour",
		"Group Size: 3–6",
		"Dates: 2026-06-01 – 2026-06-03",
		"Pickup Location: Shannon Airport",
		"Tour: Cliffs of Moher & Bunratty",
		"Message: Line one\nLine two",
		"Timestamp: 2026-10-16T14:05:09.120Z",
		"IP: 203.0.113.7",
		"User Agent: Mozilla/5.0",
	}, "\n"), msg.Text)
}

func TestComposeOptionalFieldsLeaveNoEmptyLines(t *testing.T) {
	data := enquiryData()
	data.CompanyWebsite = "   "
	data.Tour = ""

	msg, err := NewComposer("Atlantic Drive Tours").Enquiry(data)
	require.NoError(t, err)

	assert.NotContains(t, msg.Text, "Company Website")
	assert.NotContains(t, msg.Text, "Tour:")
	assert.NotContains(t, msg.Text, "\n\n")
	assert.NotContains(t, msg.HTML, "Company Website")
}

func TestComposeEscapesHTML(t *testing.T) {
	data := contactData()
	data.Message = `<b>hi</b> & "quoted"`
	data.Name = `<script>alert(1)</script>`

	msg, err := NewComposer("Atlantic Drive Tours").Contact(data)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "&lt;b&gt;hi&lt;/b&gt; &amp; &#34;quoted&#34;")
	assert.NotContains(t, msg.HTML, "<b>hi</b>")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.Text, `Message: <b>hi</b> & "quoted"`)
}

func TestComposePreservesLineBreaks(t *testing.T) {
	msg, err := NewComposer("Atlantic Drive Tours").Enquiry(enquiryData())
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "Line one<br />\nLine two")
	assert.Contains(t, msg.Text, "Line one\nLine two")
}

func TestComposeFooterTimestampAndSections(t *testing.T) {
	msg, err := NewComposer("Atlantic Drive Tours").Enquiry(enquiryData())
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "Submitted 16 Oct 2026, 14:05 UTC")
	assert.Contains(t, msg.HTML, `<a href="mailto:aoife@example.com">aoife@example.com</a>`)
	assert.Contains(t, msg.HTML, "<h2>Traveller</h2>")
	assert.Contains(t, msg.HTML, "<h2>Details</h2>")
	assert.Contains(t, msg.HTML, "User Agent: Mozilla/5.0")
}

func TestComposeUnknownUserAgent(t *testing.T) {
	data := enquiryData()
	data.UserAgent = ""

	msg, err := NewComposer("Atlantic Drive Tours").Enquiry(data)
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "User Agent: unknown")
}

func TestComposeIsDeterministic(t *testing.T) {
	c := NewComposer("Atlantic Drive Tours")

	first, err := c.Enquiry(enquiryData())
	require.NoError(t, err)
	second, err := c.Enquiry(enquiryData())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSubjectStaysOnOneLine(t *testing.T) {
	data := contactData()
	data.Name = "Al\r\nBcc: victim@example.com"

	msg, err := NewComposer("Atlantic Drive Tours").Contact(data)
	require.NoError(t, err)
	assert.Equal(t, "Contact from Al Bcc: victim@example.com — Atlantic Drive Tours", msg.Subject)
}
