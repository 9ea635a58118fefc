package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"
)

// SMTPProvider sends email through an SMTP relay (e.g. Brevo) with PLAIN auth
type SMTPProvider struct {
	host     string
	port     string
	username string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPProvider creates an SMTP provider
func NewSMTPProvider(host, port, username, password string) *SMTPProvider {
	return &SMTPProvider{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sendMail: smtp.SendMail,
	}
}

func (p *SMTPProvider) Name() string {
	return "smtp"
}

// Send implements Provider. net/smtp has no context support, so ctx is only
// checked before dialling.
func (p *SMTPProvider) Send(ctx context.Context, env Envelope, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := buildMIMEMessage(env, msg, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to build email: %w", err)
	}

	// Setup SMTP authentication
	auth := smtp.PlainAuth("", p.username, p.password, p.host)

	addr := fmt.Sprintf("%s:%s", p.host, p.port)
	if err := p.sendMail(addr, auth, env.From, []string{env.To}, raw); err != nil {
		providerErr := &ProviderError{Message: err.Error()}
		var tpErr *textproto.Error
		if errors.As(err, &tpErr) {
			providerErr.Message = tpErr.Msg
			providerErr.Code = strconv.Itoa(tpErr.Code)
			providerErr.StatusCode = tpErr.Code
		}
		return "", providerErr
	}

	// SMTP relays do not return a message id through net/smtp
	return "", nil
}

// buildMIMEMessage constructs a multipart/alternative message with text and HTML parts
func buildMIMEMessage(env Envelope, msg Message, date time.Time) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	} {
		w, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", env.From)
	fmt.Fprintf(&out, "To: %s\r\n", env.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&out, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&out, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))
	fmt.Fprintf(&out, "Date: %s\r\n", date.Format(time.RFC1123Z))
	out.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%q\r\n", writer.Boundary())
	out.WriteString("\r\n")
	out.Write(body.Bytes())

	return out.Bytes(), nil
}
