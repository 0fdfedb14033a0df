// Package portal is the submitting side of the forms: it serializes form
// values, posts them to the intake API and drives a form session.
package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
	"github.com/DS-LIT/hrba-forms/internal/constant"
	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/model/types"
)

const DefaultTimeout = 30 * time.Second

// StatusError is returned when the API answered with anything but 200 or 201.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("portal: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("portal: unexpected status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: DefaultTimeout,
	}
}

// NewClientFromConfig points the client at the production API when the
// environment is production and at the local one otherwise.
func NewClientFromConfig(conf *appconfig.Config) *Client {
	return NewClient(conf.APIURL())
}

func (c *Client) url(route string) string {
	return c.BaseURL + constant.APIPrefix + route
}

func (c *Client) timeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t := c.Timeout
	if t <= 0 {
		t = DefaultTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < t {
			if left <= 0 {
				return 0, context.DeadlineExceeded
			}
			t = left
		}
	}
	return t, nil
}

func (c *Client) SubmitTribunal(ctx context.Context, fields types.TribunalReportFields) (*model.TribunalReport, error) {
	var resp types.DataResponse[*model.TribunalReport]
	if err := c.postJSON(ctx, constant.RouteTribunalReportForms, types.TribunalReportRequest{Data: fields}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) SubmitReimbursement(ctx context.Context, fields types.ReimbursementFields) (*model.ReimbursementRequest, error) {
	var resp types.DataResponse[*model.ReimbursementRequest]
	if err := c.postJSON(ctx, constant.RouteReimbursementForms, types.ReimbursementRequest{Data: fields}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SendReportFile uploads an already rendered PDF to be forwarded by email.
func (c *Client) SendReportFile(ctx context.Context, filename string, pdf []byte) (string, error) {
	timeout, err := c.timeout(ctx)
	if err != nil {
		return "", err
	}

	agent := fiber.Post(c.url(constant.RouteSendEmail)).
		Timeout(timeout).
		FileData(&fiber.FormFile{
			Fieldname: constant.UploadFieldName,
			Name:      filename,
			Content:   pdf,
		}).
		MultipartForm(nil)

	var resp types.MessageResponse
	if err := c.do(agent, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) postJSON(ctx context.Context, route string, body, out any) error {
	timeout, err := c.timeout(ctx)
	if err != nil {
		return err
	}

	agent := fiber.Post(c.url(route)).
		Timeout(timeout).
		JSONEncoder(json.Marshal).
		JSON(body)

	return c.do(agent, out)
}

func (c *Client) do(agent *fiber.Agent, out any) error {
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Wrap(errs[0], "portal: request failed")
	}

	if code != fiber.StatusOK && code != fiber.StatusCreated {
		return &StatusError{StatusCode: code, Message: gjson.GetBytes(body, "message").String()}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(body, out), "portal: decode response")
}
