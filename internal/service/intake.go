package service

import (
	"context"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gopkg.in/guregu/null.v3"

	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
	"github.com/DS-LIT/hrba-forms/internal/form"
	"github.com/DS-LIT/hrba-forms/internal/mail"
	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/model/types"
	"github.com/DS-LIT/hrba-forms/internal/pkg/apperr"
	"github.com/DS-LIT/hrba-forms/internal/pkg/observability"
	"github.com/DS-LIT/hrba-forms/internal/render"
	"github.com/DS-LIT/hrba-forms/internal/repo"
)

type TribunalStore interface {
	CreateTribunalReport(ctx context.Context, report *model.TribunalReport) error
	DeleteTribunalReport(ctx context.Context, report *model.TribunalReport) error
}

type ReimbursementStore interface {
	CreateReimbursementRequest(ctx context.Context, req *model.ReimbursementRequest) error
	DeleteReimbursementRequest(ctx context.Context, req *model.ReimbursementRequest) error
}

type Mailer interface {
	Send(ctx context.Context, m mail.Message) error
}

// Intake stages a submission, renders it, mails the PDF and drops the row again.
// Nothing outlives the request: the row is deleted whatever happens after it was inserted.
type Intake struct {
	Tribunals      TribunalStore
	Reimbursements ReimbursementStore
	Renderer       render.Renderer
	Mailer         Mailer
	Catalog        *model.Catalog
	Recipient      string
}

type IntakeDeps struct {
	fx.In

	Conf           *appconfig.Config
	Tribunals      *repo.TribunalReport
	Reimbursements *repo.ReimbursementRequest
	Renderer       render.Renderer
	Mailer         *mail.Dispatcher
}

func NewIntake(deps IntakeDeps) *Intake {
	return &Intake{
		Tribunals:      deps.Tribunals,
		Reimbursements: deps.Reimbursements,
		Renderer:       deps.Renderer,
		Mailer:         deps.Mailer,
		Catalog:        model.DefaultCatalog(),
		Recipient:      deps.Conf.ReportRecipient(),
	}
}

func (s *Intake) SubmitTribunal(ctx context.Context, fields *types.TribunalReportFields) (report *model.TribunalReport, err error) {
	defer func() {
		observability.Submissions.WithLabelValues(model.KindTribunal, observability.Outcome(err)).Inc()
	}()

	report = &model.TribunalReport{}
	if err := copier.Copy(report, fields); err != nil {
		return nil, apperr.ErrInternalError.WithCause(err)
	}
	report.Team1Colour = form.Capitalize(report.Team1Colour)
	report.Team2Colour = form.Capitalize(report.Team2Colour)

	if err := s.Tribunals.CreateTribunalReport(ctx, report); err != nil {
		return nil, apperr.ErrInternalError.WithCause(err)
	}
	defer s.discard(ctx, report, func(ctx context.Context) error {
		return s.Tribunals.DeleteTribunalReport(ctx, report)
	})

	err = s.deliver(ctx, report, model.MailTribunal, map[string]string{
		"name":  report.Name,
		"venue": report.Venue,
		"date":  report.Date,
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Intake) SubmitReimbursement(ctx context.Context, fields *types.ReimbursementFields) (req *model.ReimbursementRequest, err error) {
	defer func() {
		observability.Submissions.WithLabelValues(model.KindReimbursement, observability.Outcome(err)).Inc()
	}()

	req = &model.ReimbursementRequest{}
	if err := copier.Copy(req, fields); err != nil {
		return nil, apperr.ErrInternalError.WithCause(err)
	}
	req.GuardianName = null.StringFrom(fields.ContactName)
	req.GuardianNumber = null.NewString(fields.ContactNumber, fields.ContactNumber != "")
	req.GuardianEmail = null.NewString(fields.ContactEmail, fields.ContactEmail != "")

	if err := s.Reimbursements.CreateReimbursementRequest(ctx, req); err != nil {
		return nil, apperr.ErrInternalError.WithCause(err)
	}
	defer s.discard(ctx, req, func(ctx context.Context) error {
		return s.Reimbursements.DeleteReimbursementRequest(ctx, req)
	})

	err = s.deliver(ctx, req, model.MailReimbursement, map[string]string{
		"name": req.PlayerName,
		"club": req.ClubName,
		"date": req.Date,
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ForwardReport mails a PDF the client rendered itself.
func (s *Intake) ForwardReport(ctx context.Context, filename string, content []byte) error {
	tmpl := s.Catalog.MailTemplate(model.MailForward)
	err := s.Mailer.Send(ctx, mail.Message{
		To:      []string{s.Recipient},
		Subject: tmpl.Subject,
		Body:    tmpl.Body,
		Attachments: []mail.Attachment{
			{Filename: filename, ContentType: mail.ContentTypePDF, Content: content},
		},
	})
	if err != nil {
		return apperr.ErrMailFailed.WithCause(err)
	}
	return nil
}

func (s *Intake) deliver(ctx context.Context, doc model.Document, template string, values map[string]string) error {
	start := time.Now()
	pdf, err := s.Renderer.Render(ctx, doc)
	if err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "intake.render.failed").
			Str("kind", doc.Kind()).
			Msg("failed to render submission; no email is sent")
		return apperr.ErrRenderFailed.WithCause(err)
	}

	tmpl := s.Catalog.MailTemplate(template)
	err = s.Mailer.Send(ctx, mail.Message{
		To:      []string{s.Recipient},
		Subject: tmpl.Subject,
		Body:    tmpl.BodyWith(values),
		Attachments: []mail.Attachment{
			{Filename: tmpl.AttachmentWith(values), ContentType: mail.ContentTypePDF, Content: pdf},
		},
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "intake.mail.failed").
			Str("kind", doc.Kind()).
			Msg("failed to email rendered submission")
		return apperr.ErrMailFailed.WithCause(err)
	}

	log.Info().
		Str("evt.name", "intake.delivered").
		Str("kind", doc.Kind()).
		Int("size", len(pdf)).
		Dur("duration", time.Since(start)).
		Msg("submission rendered and emailed")
	return nil
}

// discard deletes a staged row. It runs even when the request context is already cancelled.
func (s *Intake) discard(ctx context.Context, doc model.Document, del func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := del(ctx); err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "intake.discard.failed").
			Str("kind", doc.Kind()).
			Msg("failed to delete staged submission")
	}
}
