package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// isoTimestamp matches the millisecond UTC form used by browsers (2026-10-16T09:30:00.000Z)
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

// displayTimestamp is the footer format, always rendered in UTC
const displayTimestamp = "2 Jan 2006, 15:04 MST"

// Message is a composed notification ready for delivery
type Message struct {
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	ClientIP    string
	SubmittedAt time.Time
}

// EnquiryEmailData holds the data for booking enquiry emails
type EnquiryEmailData struct {
	Name            string
	Email           string
	PhoneOrWhatsapp string
	Country         string
	ServiceType     string
	GroupSize       string
	Dates           string
	PickupLocation  string
	Message         string
	CompanyWebsite  string
	Tour            string
	ClientIP        string
	UserAgent       string
	SubmittedAt     time.Time
}

// Composer renders submissions into plain text and HTML. It performs no I/O and
// the same input always yields byte-identical output.
type Composer struct {
	brand string
}

// NewComposer creates a composer signing emails with the given brand name
func NewComposer(brand string) *Composer {
	return &Composer{brand: brand}
}

type row struct {
	Label string
	Value string
}

// rows collects label/value pairs, dropping optional values that are blank
type rows []row

func (r *rows) add(label, value string) {
	*r = append(*r, row{Label: label, Value: strings.TrimSpace(value)})
}

func (r *rows) optional(label, value string) {
	if strings.TrimSpace(value) != "" {
		r.add(label, value)
	}
}

func (r rows) text() string {
	lines := make([]string, len(r))
	for i, rw := range r {
		lines[i] = rw.Label + ": " + rw.Value
	}
	return strings.Join(lines, "\n")
}

type htmlView struct {
	Title        string
	Brand        string
	ReplyTo      string
	PartyHeading string
	Party        rows
	Details      rows
	Message      string
	SubmittedAt  string
	Footer       rows
}

// Contact composes the operator notification for a contact form submission
func (c *Composer) Contact(data ContactEmailData) (Message, error) {
	submitted := data.SubmittedAt.UTC()

	var text rows
	text.add("Name", data.Name)
	text.add("Email", data.Email)
	text.optional("Phone", data.Phone)
	text.add("Message", data.Message)
	text.add("Submitted", submitted.Format(isoTimestamp))
	text.add("IP", data.ClientIP)

	var party rows
	party.add("Name", data.Name)
	party.add("Email", data.Email)
	party.optional("Phone", data.Phone)

	var footer rows
	footer.add("IP", data.ClientIP)

	html, err := renderHTML(htmlView{
		Title:        "New contact message",
		Brand:        c.brand,
		ReplyTo:      strings.TrimSpace(data.Email),
		PartyHeading: "Sender",
		Party:        party,
		Message:      strings.TrimSpace(data.Message),
		SubmittedAt:  submitted.Format(displayTimestamp),
		Footer:       footer,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		Subject: c.subject("Contact", data.Name),
		Text:    text.text(),
		HTML:    html,
		ReplyTo: strings.TrimSpace(data.Email),
	}, nil
}

// Enquiry composes the operator notification for a booking enquiry
func (c *Composer) Enquiry(data EnquiryEmailData) (Message, error) {
	submitted := data.SubmittedAt.UTC()
	userAgent := data.UserAgent
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "unknown"
	}

	var text rows
	text.add("Name", data.Name)
	text.add("Email", data.Email)
	text.add("Phone/WhatsApp", data.PhoneOrWhatsapp)
	text.add("Country", data.Country)
	text.add("Service", data.ServiceType)
	text.add("Group Size", data.GroupSize)
	text.add("Dates", data.Dates)
	text.add("Pickup Location", data.PickupLocation)
	text.optional("Tour", data.Tour)
	text.optional("Company Website", data.CompanyWebsite)
	text.add("Message", data.Message)
	text.add("Timestamp", submitted.Format(isoTimestamp))
	text.add("IP", data.ClientIP)
	text.add("User Agent", userAgent)

	var party rows
	party.add("Name", data.Name)
	party.add("Email", data.Email)
	party.add("Phone/WhatsApp", data.PhoneOrWhatsapp)
	party.add("Country", data.Country)

	var details rows
	details.add("Service", data.ServiceType)
	details.add("Group Size", data.GroupSize)
	details.add("Dates", data.Dates)
	details.add("Pickup Location", data.PickupLocation)
	details.optional("Tour", data.Tour)
	details.optional("Company Website", data.CompanyWebsite)

	var footer rows
	footer.add("IP", data.ClientIP)
	footer.add("User Agent", userAgent)

	html, err := renderHTML(htmlView{
		Title:        "New booking enquiry",
		Brand:        c.brand,
		ReplyTo:      strings.TrimSpace(data.Email),
		PartyHeading: "Traveller",
		Party:        party,
		Details:      details,
		Message:      strings.TrimSpace(data.Message),
		SubmittedAt:  submitted.Format(displayTimestamp),
		Footer:       footer,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		Subject: c.subject("Enquiry", data.Name),
		Text:    text.text(),
		HTML:    html,
		ReplyTo: strings.TrimSpace(data.Email),
	}, nil
}

// subject keeps header values on one line
func (c *Composer) subject(kind, name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return fmt.Sprintf("%s from %s — %s", kind, name, c.brand)
}

// multiline escapes s and turns its line breaks into <br /> tags
func multiline(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br />\n"))
}

var notificationTemplate = template.Must(template.New("notification").
	Funcs(template.FuncMap{"multiline": multiline}).
	Parse(notificationHTML))

func renderHTML(view htmlView) (string, error) {
	var body bytes.Buffer
	if err := notificationTemplate.Execute(&body, view); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// notificationHTML is the HTML template shared by contact and enquiry emails
const notificationHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0b4f6c; color: white; padding: 20px; text-align: center; }
        .reply { padding: 10px 20px; background: #eef6f9; }
        .content { padding: 20px; background: #f9f9f9; }
        .label { font-weight: bold; color: #555; padding-right: 12px; vertical-align: top; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0b4f6c; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>{{.Brand}}</p>
        </div>
        <div class="reply">
            <p>Reply to: <a href="mailto:{{.ReplyTo}}">{{.ReplyTo}}</a></p>
        </div>
        <div class="content">
            <h2>{{.PartyHeading}}</h2>
            <table>
{{- range .Party}}
                <tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{- end}}
            </table>
{{- if .Details}}
            <h2>Details</h2>
            <table>
{{- range .Details}}
                <tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{- end}}
            </table>
{{- end}}
            <h2>Message</h2>
            <div class="message-box">{{multiline .Message}}</div>
        </div>
        <div class="footer">
            <p>Submitted {{.SubmittedAt}}</p>
{{- range .Footer}}
            <p>{{.Label}}: {{.Value}}</p>
{{- end}}
            <p>This email was sent from the {{.Brand}} website.</p>
        </div>
    </div>
</body>
</html>`
