// Package mail sends rendered submissions through an SMTP relay.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"

	"github.com/DS-LIT/hrba-forms/internal/pkg/observability"
)

const ContentTypePDF = "application/pdf"

type TLSMode string

const (
	TLSMandatory     TLSMode = "mandatory"
	TLSOpportunistic TLSMode = "opportunistic"
	TLSImplicit      TLSMode = "ssl"
	TLSNone          TLSMode = "none"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// Auth is one of login, plain or none.
	Auth    string
	TLS     TLSMode
	From    string
	Timeout time.Duration
}

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Message struct {
	To          []string
	From        string
	Subject     string
	Body        string
	Attachments []Attachment
}

var ErrNoRecipient = errors.New("mail: message has no recipient")

// Transport delivers composed messages. *gomail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// Dispatcher composes and sends one message per call. There is no retry and no queue.
type Dispatcher struct {
	conf      Config
	transport Transport
}

func NewDispatcher(conf Config) (*Dispatcher, error) {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	opts := []gomail.Option{
		gomail.WithPort(conf.Port),
		gomail.WithTimeout(timeout),
	}
	switch TLSMode(strings.ToLower(string(conf.TLS))) {
	case TLSImplicit:
		opts = append(opts, gomail.WithSSL())
	case TLSOpportunistic:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	case TLSNone:
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}
	switch strings.ToLower(conf.Auth) {
	case "none":
	case "plain":
		opts = append(opts, gomail.WithSMTPAuth(gomail.SMTPAuthPlain), gomail.WithUsername(conf.Username), gomail.WithPassword(conf.Password))
	default:
		opts = append(opts, gomail.WithSMTPAuth(gomail.SMTPAuthLogin), gomail.WithUsername(conf.Username), gomail.WithPassword(conf.Password))
	}

	client, err := gomail.NewClient(conf.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to configure SMTP client: %w", err)
	}
	return NewDispatcherWithTransport(conf, client), nil
}

func NewDispatcherWithTransport(conf Config, t Transport) *Dispatcher {
	return &Dispatcher{conf: conf, transport: t}
}

// Compose builds the MIME message for m. From defaults to the configured sender.
func (d *Dispatcher) Compose(m Message) (*gomail.Msg, error) {
	if len(m.To) == 0 {
		return nil, ErrNoRecipient
	}
	from := m.From
	if from == "" {
		from = d.conf.From
	}

	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("mail: invalid sender %q: %w", from, err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("mail: invalid recipient: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)

	for _, a := range m.Attachments {
		ct := a.ContentType
		if ct == "" {
			ct = ContentTypePDF
		}
		if err := msg.AttachReader(a.Filename, bytes.NewReader(a.Content), gomail.WithFileContentType(gomail.ContentType(ct))); err != nil {
			return nil, fmt.Errorf("mail: failed to attach %s: %w", a.Filename, err)
		}
	}
	return msg, nil
}

// Send composes m and makes a single delivery attempt.
func (d *Dispatcher) Send(ctx context.Context, m Message) error {
	msg, err := d.Compose(m)
	if err != nil {
		return err
	}

	start := time.Now()
	err = d.transport.DialAndSendWithContext(ctx, msg)
	observability.MailDispatch.WithLabelValues(observability.Outcome(err)).Inc()
	observability.MailDispatchDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("mail: failed to send %q: %w", m.Subject, err)
	}

	log.Info().
		Str("evt.name", "mail.sent").
		Strs("to", m.To).
		Str("subject", m.Subject).
		Int("attachments", len(m.Attachments)).
		Dur("duration", time.Since(start)).
		Msg("email dispatched")
	return nil
}
