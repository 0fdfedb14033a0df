package rekuest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/DS-LIT/hrba-forms/internal/model/types"
	"github.com/DS-LIT/hrba-forms/internal/pkg/apperr"
)

func validReimbursement() types.ReimbursementFields {
	return types.ReimbursementFields{
		PlayerName:  "Sam",
		ClubName:    "Hills Raiders",
		TeamName:    "U14 Boys",
		Amount:      150,
		Reason:      "Injury",
		AccountName: "S Smith",
		BSB:         36001,
		Date:        "2024-03-05",
		ContactName: "Sam",
	}
}

func violations(t *testing.T, err error) []*ErrorResponse {
	t.Helper()
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	require.NotNil(t, e.Extras)
	v, ok := (*e.Extras)["violations"].([]*ErrorResponse)
	require.True(t, ok)
	return v
}

func TestValidStructGuardianContact(t *testing.T) {
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	adult := validReimbursement()
	adult.ContactNumber = ""
	assert.NoError(t, ValidStruct(c, &adult))

	minor := validReimbursement()
	minor.IsUnder18 = true
	v := violations(t, ValidStruct(c, &minor))
	fields := []string{}
	for _, e := range v {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"ReimbursementFields.contact_number", "ReimbursementFields.contact_email"}, fields)

	minor.ContactNumber = "04x"
	minor.ContactEmail = "parent@example.org"
	v = violations(t, ValidStruct(c, &minor))
	require.Len(t, v, 1)
	assert.Equal(t, "digits", v[0].Violation)
	assert.Equal(t, "contact_number must be numeric", v[0].Message)
}

func TestValidBody(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *apperr.Error
			if assert.ErrorAs(t, err, &e) {
				return c.Status(e.StatusCode).JSON(fiber.Map{"code": e.ErrorCode, "extras": e.Extras})
			}
			return err
		},
	})
	app.Post("/", func(c *fiber.Ctx) error {
		var req types.TribunalReportRequest
		if err := ValidBody(c, &req); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	body, _ := json.Marshal(fiber.Map{"data": fiber.Map{
		"name":             "Jane",
		"co_official":      "John",
		"team_1_name":      "Raiders",
		"team_1_colour":    "Red",
		"team_2_name":      "Hawks",
		"team_2_colour":    "Teal",
		"date":             "2024-03-05",
		"time":             "13:30:00.000",
		"venue":            "Court 1",
		"person_on_report": "Player 7",
		"allegations":      []string{},
		"summary":          "Words",
	}})
	req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(string(body)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out struct {
		Code   string `json:"code"`
		Extras struct {
			Violations []ErrorResponse `json:"violations"`
		} `json:"extras"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, apperr.CodeInvalidRequest, out.Code)

	tags := map[string]string{}
	for _, v := range out.Extras.Violations {
		tags[v.Field] = v.Violation
	}
	assert.Equal(t, map[string]string{
		"TribunalReportRequest.data.team_2_colour": "teamcolour",
		"TribunalReportRequest.data.allegations":   "min",
	}, tags)
}
