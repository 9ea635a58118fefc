package email

import (
	"context"
	"strings"

	"github.com/resend/resend-go/v2"
)

// resendEmails is the part of the Resend SDK the provider uses
type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendProvider sends email through the Resend HTTP API
type ResendProvider struct {
	emails resendEmails
}

// NewResendProvider creates a provider authenticated with apiKey
func NewResendProvider(apiKey string) *ResendProvider {
	return &ResendProvider{emails: resend.NewClient(apiKey).Emails}
}

func (p *ResendProvider) Name() string {
	return "resend"
}

// Send implements Provider
func (p *ResendProvider) Send(ctx context.Context, env Envelope, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    env.From,
		To:      []string{env.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := p.emails.SendWithContext(ctx, params)
	if err != nil {
		return "", &ProviderError{Message: strings.TrimPrefix(err.Error(), "[ERROR]: ")}
	}
	if sent == nil {
		return "", nil
	}
	return sent.Id, nil
}
