package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/kinsman/brandsite/backend/go-services/internal/schema"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	in  *sesv2.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestRender(t *testing.T) {
	s, err := newSES(&fakeSES{}, "site@example.com", "me@example.com")
	require.NoError(t, err)

	subject, body, err := s.Render(&schema.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "hello there"})
	require.NoError(t, err)
	require.Equal(t, "Contact form: Ada", subject)
	require.Contains(t, body, "New message from Ada <ada@example.com>")
	require.Contains(t, body, "Subject: (none)")
	require.Contains(t, body, "hello there")

	topic := "Hiring"
	subject, body, err = s.Render(&schema.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: &topic, Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, "Contact form: Hiring", subject)
	require.Contains(t, body, "Subject: Hiring")
}

func TestNotifyContactBuildsMessage(t *testing.T) {
	fake := &fakeSES{}
	s, err := newSES(fake, "site@example.com", "me@example.com")
	require.NoError(t, err)

	require.NoError(t, s.NotifyContact(context.Background(), &schema.ContactMessage{Name: "A", Email: "a@b.com", Message: "hi"}))
	require.Equal(t, "site@example.com", aws.ToString(fake.in.FromEmailAddress))
	require.Equal(t, []string{"me@example.com"}, fake.in.Destination.ToAddresses)
	require.Equal(t, []string{"a@b.com"}, fake.in.ReplyToAddresses)
	require.Contains(t, aws.ToString(fake.in.Content.Simple.Body.Text.Data), "hi")

	fake.err = errors.New("throttled")
	err = s.NotifyContact(context.Background(), &schema.ContactMessage{Name: "A", Email: "a@b.com", Message: "hi"})
	require.ErrorContains(t, err, "throttled")
}
