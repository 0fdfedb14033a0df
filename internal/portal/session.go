package portal

import (
	"context"
	"sync/atomic"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/DS-LIT/hrba-forms/internal/form"
	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/signature"
	"github.com/DS-LIT/hrba-forms/internal/render"
)

const (
	MessageSubmitted = "Form submission successful"
	MessageFailed    = "Failed to submit form"
)

var (
	ErrBusy          = errors.New("portal: a submission is already in progress")
	ErrUnknownSchema = errors.New("portal: no endpoint for schema")
)

type Notice string

const (
	NoticeSuccess Notice = "success"
	NoticeFailure Notice = "error"
)

type Notifier interface {
	Notify(kind Notice, message string)
}

type NotifierFunc func(kind Notice, message string)

func (f NotifierFunc) Notify(kind Notice, message string) {
	f(kind, message)
}

// Session ties one form to its signature pad and the API.
//
// With Renderer set, the session draws the report itself and uploads the PDF
// to the forwarding endpoint instead of posting the record.
type Session struct {
	Form     *form.Form
	Pad      *signature.Pad
	Client   *Client
	Renderer render.Renderer
	Notifier Notifier

	busy atomic.Bool
}

// Busy reports whether a submission is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Submit validates the form and sends it. A validation failure is returned
// without touching the network. On success the pad and form are cleared; on
// failure both are kept so the user can retry.
func (s *Session) Submit(ctx context.Context) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	err := s.Form.Submit(ctx, s.send)

	var invalid *form.ValidationError
	if errors.As(err, &invalid) {
		return err
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "portal.submit.failed").
			Str("form", s.Form.Schema().Name).
			Msg("failed to submit form")
		s.notify(NoticeFailure, MessageFailed)
		return err
	}

	if s.Pad != nil {
		s.Pad.Clear()
	}
	s.Form.Reset()
	s.notify(NoticeSuccess, MessageSubmitted)
	return nil
}

// Reset discards the current input.
func (s *Session) Reset() {
	if s.Pad != nil {
		s.Pad.Clear()
	}
	s.Form.Reset()
}

func (s *Session) notify(kind Notice, message string) {
	if s.Notifier != nil {
		s.Notifier.Notify(kind, message)
	}
}

func (s *Session) signature() (string, error) {
	if s.Pad == nil {
		return "", nil
	}
	return s.Pad.Export()
}

func (s *Session) send(ctx context.Context, values form.Values) error {
	sig, err := s.signature()
	if err != nil {
		return errors.Wrap(err, "portal: export signature")
	}

	switch name := s.Form.Schema().Name; name {
	case form.SchemaTribunal:
		fields, err := TribunalFields(values, sig)
		if err != nil {
			return err
		}
		if s.Renderer != nil {
			doc := &model.TribunalReport{}
			if err := copier.Copy(doc, &fields); err != nil {
				return err
			}
			return s.upload(ctx, doc)
		}
		_, err = s.Client.SubmitTribunal(ctx, fields)
		return err

	case form.SchemaReimbursement:
		fields, err := ReimbursementFields(values, sig)
		if err != nil {
			return err
		}
		if s.Renderer != nil {
			doc := &model.ReimbursementRequest{}
			if err := copier.Copy(doc, &fields); err != nil {
				return err
			}
			doc.GuardianName = null.StringFrom(fields.ContactName)
			doc.GuardianNumber = null.NewString(fields.ContactNumber, fields.ContactNumber != "")
			doc.GuardianEmail = null.NewString(fields.ContactEmail, fields.ContactEmail != "")
			return s.upload(ctx, doc)
		}
		_, err = s.Client.SubmitReimbursement(ctx, fields)
		return err

	default:
		return errors.Wrap(ErrUnknownSchema, name)
	}
}

func (s *Session) upload(ctx context.Context, doc model.Document) error {
	pdf, err := s.Renderer.Render(ctx, doc)
	if err != nil {
		return err
	}
	_, err = s.Client.SendReportFile(ctx, doc.Sheet().Filename, pdf)
	return err
}
