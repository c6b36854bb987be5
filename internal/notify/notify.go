// Package notify mails the site owner when a contact message is stored.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/kinsman/brandsite/backend/go-services/internal/schema"
	"github.com/kinsman/brandsite/backend/go-services/pkg/logger"
	"github.com/osteele/liquid"
)

const bodyTemplate = `New message from {{ name }} <{{ email }}>
Subject: {{ subject | default: "(none)" }}

{{ message }}
`

type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES sends contact notifications through AWS SES.
type SES struct {
	client sesAPI
	from   string
	to     string
	body   *liquid.Template
}

// NewSES builds a sender using the default AWS credential chain for region.
func NewSES(ctx context.Context, region, from, to string) (*SES, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return newSES(sesv2.NewFromConfig(cfg), from, to)
}

func newSES(client sesAPI, from, to string) (*SES, error) {
	tpl, err := liquid.NewEngine().ParseString(bodyTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse notification template: %w", err)
	}
	return &SES{client: client, from: from, to: to, body: tpl}, nil
}

// Render returns the subject and plain-text body for msg.
func (s *SES) Render(msg *schema.ContactMessage) (string, string, error) {
	bindings := map[string]any{
		"name":    msg.Name,
		"email":   msg.Email,
		"message": msg.Message,
		"subject": nil,
	}
	subject := "Contact form: " + msg.Name
	if msg.Subject != nil && *msg.Subject != "" {
		bindings["subject"] = *msg.Subject
		subject = "Contact form: " + *msg.Subject
	}
	body, err := s.body.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("render notification: %w", err)
	}
	return subject, body, nil
}

// NotifyContact mails msg to the configured recipient. The sender's address is set
// as Reply-To so the owner can answer directly.
func (s *SES) NotifyContact(ctx context.Context, msg *schema.ContactMessage) error {
	subject, body, err := s.Render(msg)
	if err != nil {
		return err
	}
	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{s.to}},
		ReplyToAddresses: []string{msg.Email},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	logger.Debugf("contact notification sent (id: %s)", aws.ToString(out.MessageId))
	return nil
}
