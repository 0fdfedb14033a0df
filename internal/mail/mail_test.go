package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

type recordingTransport struct {
	sent []*gomail.Msg
	err  error
}

func (r *recordingTransport) DialAndSendWithContext(_ context.Context, msgs ...*gomail.Msg) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msgs...)
	return nil
}

func TestSend(t *testing.T) {
	tr := &recordingTransport{}
	d := NewDispatcherWithTransport(Config{From: "forms@hillsraiders.com.au"}, tr)

	err := d.Send(context.Background(), Message{
		To:      []string{"itadmin@hillsraiders.com.au"},
		Subject: "New Basketball WA Report Form Submission",
		Body:    "Jane has submitted a new Basketball WA Report Form See attached PDF.",
		Attachments: []Attachment{
			{Filename: "report.pdf", Content: []byte("%PDF-1.4 test")},
		},
	})
	require.NoError(t, err)
	require.Len(t, tr.sent, 1)

	var buf bytes.Buffer
	_, err = tr.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "From: <forms@hillsraiders.com.au>")
	assert.Contains(t, raw, "To: <itadmin@hillsraiders.com.au>")
	assert.Contains(t, raw, "Subject: New Basketball WA Report Form Submission")
	assert.Contains(t, raw, "application/pdf")
	assert.Contains(t, raw, "report.pdf")
}

func TestSendErrors(t *testing.T) {
	d := NewDispatcherWithTransport(Config{From: "forms@hillsraiders.com.au"}, &recordingTransport{})
	assert.ErrorIs(t, d.Send(context.Background(), Message{Subject: "x"}), ErrNoRecipient)

	refused := errors.New("535 authentication failed")
	d = NewDispatcherWithTransport(Config{From: "forms@hillsraiders.com.au"}, &recordingTransport{err: refused})
	err := d.Send(context.Background(), Message{To: []string{"a@example.org"}, Subject: "x"})
	assert.ErrorIs(t, err, refused)

	d = NewDispatcherWithTransport(Config{From: "not an address"}, &recordingTransport{})
	assert.Error(t, d.Send(context.Background(), Message{To: []string{"a@example.org"}}))
}

func TestNewDispatcher(t *testing.T) {
	for _, mode := range []TLSMode{TLSMandatory, TLSOpportunistic, TLSImplicit, TLSNone} {
		d, err := NewDispatcher(Config{Host: "smtp.office365.com", Port: 587, TLS: mode, Username: "u", Password: "p"})
		require.NoError(t, err, mode)
		assert.NotNil(t, d)
	}
}
