// Package mail renders and sends transactional delivery emails through
// Amazon SES. Recipients are validated before any send attempt; send
// failures are reported to the caller and never retried in-line.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	netmail "net/mail"
	texttemplate "text/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

const charset = "UTF-8"

// SESAPI is the subset of the SES client used by the Notifier.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Notifier sends download-link emails from a fixed sender address.
type Notifier struct {
	client SESAPI
	sender string
}

func NewNotifier(client SESAPI, sender string) *Notifier {
	return &Notifier{client: client, sender: sender}
}

// SendAlbumReady emails a time-limited album download link.
func (n *Notifier) SendAlbumReady(ctx context.Context, to, link string, ttl time.Duration) error {
	return n.sendLink(ctx, to, "Your Album is Ready for Download",
		albumReadyTextTmpl, albumReadyHTMLTmpl, link, ttl)
}

// SendPhotoReady emails a time-limited single-photo download link.
func (n *Notifier) SendPhotoReady(ctx context.Context, to, link string, ttl time.Duration) error {
	return n.sendLink(ctx, to, "Your Photo is Ready for Download",
		photoReadyTextTmpl, photoReadyHTMLTmpl, link, ttl)
}

func (n *Notifier) sendLink(ctx context.Context, to, subject string,
	text *texttemplate.Template, html *htmltemplate.Template,
	link string, ttl time.Duration) error {

	if err := ValidateAddress(to); err != nil {
		return err
	}

	data := linkData{Link: link, TTLHours: ttlHours(ttl)}

	var textBody, htmlBody bytes.Buffer
	if err := text.Execute(&textBody, data); err != nil {
		return fmt.Errorf("render text body: %w", err)
	}
	if err := html.Execute(&htmlBody, data); err != nil {
		return fmt.Errorf("render html body: %w", err)
	}

	return n.send(ctx, to, subject, textBody.String(), htmlBody.String())
}

func (n *Notifier) send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	body := &sestypes.Body{
		Text: &sestypes.Content{Data: aws.String(textBody), Charset: aws.String(charset)},
		Html: &sestypes.Content{Data: aws.String(htmlBody), Charset: aws.String(charset)},
	}

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(n.sender),
		Destination: &sestypes.Destination{ToAddresses: []string{to}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject), Charset: aws.String(charset)},
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", errors.Join(common.ErrUpstream, err))
	}

	return nil
}

// ValidateAddress reports whether to is a deliverable address.
func ValidateAddress(to string) error {
	if to == "" {
		return fmt.Errorf("empty recipient: %w", common.ErrValidation)
	}
	if _, err := netmail.ParseAddress(to); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, common.ErrValidation)
	}
	return nil
}

func ttlHours(ttl time.Duration) int {
	h := int(ttl / time.Hour)
	if h < 1 {
		h = 1
	}
	return h
}
