package form_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/fx"

	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
	"github.com/DS-LIT/hrba-forms/internal/constant"
	"github.com/DS-LIT/hrba-forms/internal/infra"
	"github.com/DS-LIT/hrba-forms/internal/mail"
	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/testentry"
	"github.com/DS-LIT/hrba-forms/internal/repo"
)

type outbox struct {
	mu   sync.Mutex
	sent []*gomail.Msg
	err  error
}

func (o *outbox) DialAndSendWithContext(_ context.Context, msgs ...*gomail.Msg) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msgs...)
	return nil
}

func (o *outbox) raw(t *testing.T, i int) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := o.sent[i].WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

type deps struct {
	fx.In

	App            *fiber.App
	Tribunals      *repo.TribunalReport
	Reimbursements *repo.ReimbursementRequest
}

func setup(t *testing.T) (*deps, *outbox) {
	box := &outbox{}
	var d deps
	testentry.Populate(t, []fx.Option{
		fx.Decorate(func(conf *appconfig.Config) *mail.Dispatcher {
			return mail.NewDispatcherWithTransport(infra.MailConfig(conf), box)
		}),
	}, &d)
	return &d, box
}

func request(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, []byte) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(b))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return request(t, app, req)
}

func tribunalPayload() map[string]any {
	return map[string]any{
		"data": map[string]any{
			"name":             "Jane Referee",
			"co_official":      "Sam Umpire",
			"team_1_name":      "Raiders",
			"team_1_colour":    "Red",
			"team_2_name":      "Hornets",
			"team_2_colour":    "Blue",
			"date":             "2024-03-05",
			"time":             "13:30:00.000",
			"venue":            "Hills Stadium",
			"person_on_report": "Player 7",
			"allegations":      []string{model.DefaultCatalog().Allegations[1]},
			"summary":          "Swore at the referee after a foul call.",
			"person_notified":  true,
			"signature":        "",
		},
	}
}

func TestTribunalReportEndToEnd(t *testing.T) {
	d, box := setup(t)

	status, body := postJSON(t, d.App, "/api/tribunal-report-forms", tribunalPayload())
	require.Equal(t, fiber.StatusOK, status, string(body))

	data := gjson.GetBytes(body, "data")
	assert.Equal(t, "Hills Stadium", data.Get("venue").String())
	assert.Equal(t, "Red", data.Get("team_1_colour").String())
	assert.Len(t, data.Get("documentId").String(), 26, "document ids are ULIDs")

	require.Len(t, box.sent, 1)
	raw := box.raw(t, 0)
	assert.Contains(t, raw, "To: <itadmin@hillsraiders.com.au>")
	assert.Contains(t, raw, "New Basketball WA Report Form Submission")
	assert.Contains(t, raw, "application/pdf")

	n, err := d.Tribunals.CountTribunalReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n, "staged row is deleted after mailing")
}

func TestTribunalReportValidation(t *testing.T) {
	d, box := setup(t)

	payload := tribunalPayload()
	data := payload["data"].(map[string]any)
	data["allegations"] = []string{}
	data["team_1_colour"] = "Teal"
	delete(data, "venue")

	status, body := postJSON(t, d.App, "/api/tribunal-report-forms", payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "INVALID_REQUEST")
	assert.Contains(t, string(body), "allegations")
	assert.Contains(t, string(body), "venue")
	assert.Empty(t, box.sent)
}

func TestTribunalReportMailFailure(t *testing.T) {
	d, box := setup(t)
	box.err = io.ErrUnexpectedEOF

	status, body := postJSON(t, d.App, "/api/tribunal-report-forms", tribunalPayload())
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Contains(t, string(body), "MAIL_DISPATCH_FAILED")

	n, err := d.Tribunals.CountTribunalReports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTribunalReportIdempotency(t *testing.T) {
	d, box := setup(t)

	key := "hrbatest" + uniuri.NewLen(32)
	send := func() (int, []byte, string) {
		b, _ := json.Marshal(tribunalPayload())
		req := httptest.NewRequest(fiber.MethodPost, "/api/tribunal-report-forms", bytes.NewReader(b))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(constant.IdempotencyKeyHeader, key)
		resp, err := d.App.Test(req, -1)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, body, resp.Header.Get(constant.IdempotencyHeader)
	}

	status, first, marker := send()
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "saved", marker)

	status, second, marker := send()
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "hit", marker)
	assert.Equal(t, first, second)
	assert.Len(t, box.sent, 1)
}

func TestReimbursementEndToEnd(t *testing.T) {
	d, box := setup(t)

	payload := map[string]any{
		"data": map[string]any{
			"player_name":    "Kid Player",
			"club_name":      "Hills Raiders",
			"team_name":      "U14 Boys",
			"amount":         40.5,
			"reason":         "Uniform",
			"account_name":   "P Parent",
			"bsb":            62000,
			"account_number": 87654321,
			"date":           "2024-03-06",
			"is_under_18":    true,
			"contact_name":   "Pat Parent",
			"contact_number": "0400111222",
			"contact_email":  "pat@example.com",
		},
	}
	status, body := postJSON(t, d.App, "/api/reimbursement-forms", payload)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"contact_email":"pat@example.com"`)

	require.Len(t, box.sent, 1)
	assert.Contains(t, box.raw(t, 0), "Subject: New Reimbursement Form Submission")

	n, err := d.Reimbursements.CountReimbursementRequests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// guardian contact is required for under 18s
	data := payload["data"].(map[string]any)
	data["contact_number"] = ""
	status, body = postJSON(t, d.App, "/api/reimbursement-forms", payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "contact_number")
}

func upload(t *testing.T, app *fiber.App, field string, content []byte) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := w.CreateFormFile(field, "Referee_Tribunal_Report.pdf")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/send-email", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return request(t, app, req)
}

func TestSendEmail(t *testing.T) {
	d, box := setup(t)

	status, body := upload(t, d.App, "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"Email and file are required."}`, string(body))

	status, body = upload(t, d.App, constant.UploadFieldName, []byte("%PDF-1.4 uploaded"))
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"Email sent successfully."}`, string(body))
	require.Len(t, box.sent, 1)
	raw := box.raw(t, 0)
	assert.Contains(t, raw, "Subject: Referee Tribunal Report")
	assert.Contains(t, raw, "Referee_Tribunal_Report.pdf")

	box.err = io.ErrClosedPipe
	status, body = upload(t, d.App, constant.UploadFieldName, []byte("%PDF-1.4 uploaded"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, string(body), `"message":"Failed to send email."`)
	assert.Contains(t, string(body), `"error":`)
}

func TestPortalEndpoints(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BWA Refund Form.pdf"), []byte("%PDF-1.4 refund"), 0o644))
	t.Setenv("HRBA_DOCUMENTS_DIR", dir)
	d, _ := setup(t)

	status, body := request(t, d.App, httptest.NewRequest(fiber.MethodGet, "/api/forms", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "Referee Forms")
	assert.Contains(t, string(body), `"route":"/reimbursement"`)

	status, body = request(t, d.App, httptest.NewRequest(fiber.MethodGet, "/api/forms/tribunal", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"name":"team1.colour"`)

	status, _ = request(t, d.App, httptest.NewRequest(fiber.MethodGet, "/api/forms/unknown", nil))
	assert.Equal(t, fiber.StatusNotFound, status)

	resp, err := d.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/theme?mode=dark", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "dark", gjson.GetBytes(body, "mode").String())
	etag := resp.Header.Get(fiber.HeaderETag)
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(fiber.MethodGet, "/api/theme?mode=dark", nil)
	req.Header.Set(fiber.HeaderIfNoneMatch, etag)
	status, _ = request(t, d.App, req)
	assert.Equal(t, fiber.StatusNotModified, status)

	resp, err = d.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/documents/bwa-refund-form.pdf", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentDisposition), "attachment"))
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.4 refund", string(b))

	status, _ = request(t, d.App, httptest.NewRequest(fiber.MethodGet, "/api/documents/missing.pdf", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestMetaEndpoints(t *testing.T) {
	d, _ := setup(t)

	status, body := request(t, d.App, httptest.NewRequest(fiber.MethodGet, "/api/_/health", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, body = request(t, d.App, httptest.NewRequest(fiber.MethodGet, "/api/_/bininfo", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"version"`)
}
