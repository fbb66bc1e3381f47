package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/go-forum-auth/pkg/mailer/templates"
)

// ErrBadJob marks a message that can never be delivered. The worker drops
// it instead of requeueing.
var ErrBadJob = errors.New("bad email job")

// RenderJob returns the subject and bodies for job, rendering its template
// when one is named.
func RenderJob(job EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = templates.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
	}
	return subject, text, html, nil
}

// HandleDelivery decodes one queued job and sends it. Errors wrapping
// ErrBadJob must not be retried.
func HandleDelivery(ctx context.Context, sender Sender, body []byte, timeout time.Duration) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	subject, text, html, err := RenderJob(job)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sender.Send(c, job.To, subject, text, html)
}
