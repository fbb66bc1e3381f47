package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	bodies []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.bodies = append(f.bodies, body)
	return nil
}

func TestQueueSender_PublishesRenderedJob(t *testing.T) {
	pub := &fakePublisher{}
	s := NewQueueSender(pub)

	err := s.Send(context.Background(), "a@x.com", "subject", "text", "<p>html</p>")
	require.NoError(t, err)
	require.Len(t, pub.bodies, 1)
	assert.Equal(t, EmailJob{To: "a@x.com", Subject: "subject", Text: "text", HTML: "<p>html</p>"}, pub.bodies[0])
}

func TestQueueSender_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	s := NewQueueSender(pub)

	err := s.Send(context.Background(), "a@x.com", "s", "t", "")
	assert.EqualError(t, err, "channel closed")
}

func TestLogSender_LogsInsteadOfSending(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.InfoLevel)

	err := NewLogSender(logger).Send(context.Background(), "a@x.com", "hello", "body", "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "mail sending disabled")
	assert.Contains(t, buf.String(), "a@x.com")
}

func TestLogSender_NilLogger(t *testing.T) {
	assert.NoError(t, (&LogSender{}).Send(context.Background(), "a@x.com", "s", "t", ""))
}
