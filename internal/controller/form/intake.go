package form

import (
	"io"
	"path/filepath"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
	"github.com/DS-LIT/hrba-forms/internal/constant"
	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/model/types"
	"github.com/DS-LIT/hrba-forms/internal/pkg/cachectrl"
	"github.com/DS-LIT/hrba-forms/internal/pkg/fiberstore"
	"github.com/DS-LIT/hrba-forms/internal/pkg/flog"
	"github.com/DS-LIT/hrba-forms/internal/pkg/middlewares"
	"github.com/DS-LIT/hrba-forms/internal/server/svr"
	"github.com/DS-LIT/hrba-forms/internal/service"
	"github.com/DS-LIT/hrba-forms/internal/util"
	"github.com/DS-LIT/hrba-forms/internal/util/rekuest"
)

const (
	MessageUploadMissing = "Email and file are required."
	MessageEmailSent     = "Email sent successfully."
	MessageEmailFailed   = "Failed to send email."
)

type Intake struct {
	fx.In

	IntakeService *service.Intake
	Conf          *appconfig.Config
	Redis         *redis.Client
	RedSync       *redsync.Redsync
}

func RegisterIntake(api *svr.API, c Intake) {
	var limiterStorage fiber.Storage
	var replayStorage fiber.Storage = fiberstore.NewMemory()
	if c.Redis != nil {
		limiterStorage = fiberstore.NewRedis(c.Redis, "hrba:limiter")
		replayStorage = fiberstore.NewRedis(c.Redis, "hrba:idempotency")
	}

	limit := middlewares.IntakeLimiter(c.Conf.IntakeRateLimit, c.Conf.IntakeRateWindow, limiterStorage)
	idempotent := middlewares.Idempotency(middlewares.IdempotencyConfig{
		Lifetime: c.Conf.IdempotencyKeyLifetime,
		Storage:  replayStorage,
		RedSync:  c.RedSync,
	})

	api.Post(constant.RouteTribunalReportForms, limit, idempotent, c.SubmitTribunal)
	api.Post(constant.RouteReimbursementForms, limit, idempotent, c.SubmitReimbursement)
	api.Post(constant.RouteSendEmail, limit, c.SendEmail)
}

func (c *Intake) SubmitTribunal(ctx *fiber.Ctx) error {
	var req types.TribunalReportRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	report, err := c.IntakeService.SubmitTribunal(ctx.UserContext(), &req.Data)
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("evt.name", "intake.tribunal.accepted").
		Str("document_id", report.DocumentID).
		Str("idempotency_key", util.IdempotencyKeyFromLocals(ctx)).
		Msg("tribunal report submitted")

	cachectrl.NoStore(ctx)
	return ctx.JSON(types.DataResponse[*model.TribunalReport]{Data: report})
}

func (c *Intake) SubmitReimbursement(ctx *fiber.Ctx) error {
	var req types.ReimbursementRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	request, err := c.IntakeService.SubmitReimbursement(ctx.UserContext(), &req.Data)
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("evt.name", "intake.reimbursement.accepted").
		Str("document_id", request.DocumentID).
		Str("idempotency_key", util.IdempotencyKeyFromLocals(ctx)).
		Msg("reimbursement request submitted")

	cachectrl.NoStore(ctx)
	return ctx.JSON(types.DataResponse[*model.ReimbursementRequest]{Data: request})
}

// SendEmail forwards a PDF the browser rendered itself.
func (c *Intake) SendEmail(ctx *fiber.Ctx) error {
	fh, err := ctx.FormFile(constant.UploadFieldName)
	if err != nil || fh.Size == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(types.MessageResponse{Message: MessageUploadMissing})
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	filename := filepath.Base(fh.Filename)
	if filename == "." || filename == string(filepath.Separator) {
		filename = "report.pdf"
	}

	if err := c.IntakeService.ForwardReport(ctx.UserContext(), filename, content); err != nil {
		flog.ErrorFrom(ctx).
			Err(err).
			Str("evt.name", "intake.forward.failed").
			Msg("failed to forward uploaded report")
		return ctx.Status(fiber.StatusInternalServerError).JSON(types.MessageResponse{
			Message: MessageEmailFailed,
			Error:   err.Error(),
		})
	}

	return ctx.JSON(types.MessageResponse{Message: MessageEmailSent})
}
