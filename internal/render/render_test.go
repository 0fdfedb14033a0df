package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/pdftext"
	"github.com/DS-LIT/hrba-forms/internal/pkg/signature"
)

func signed(t *testing.T) string {
	t.Helper()
	pad := signature.NewPad(500, 200, 2)
	pad.Stroke(signature.Point{X: 20, Y: 150}, signature.Point{X: 120, Y: 40}, signature.Point{X: 260, Y: 160})
	out, err := pad.Export()
	require.NoError(t, err)
	return out
}

func tribunal(t *testing.T) *model.TribunalReport {
	c := model.DefaultCatalog()
	return &model.TribunalReport{
		Name:           "Jane Doe",
		CoOfficial:     "John Roe",
		Team1Name:      "Raiders",
		Team1Colour:    "Red",
		Team2Name:      "Hawks",
		Team2Colour:    "Blue",
		Date:           "2024-03-05",
		Time:           "13:30:00.000",
		Venue:          "Hills Stadium",
		PersonOnReport: "Player 7",
		Allegations:    []string{c.Allegations[2], c.Allegations[0]},
		Summary:        strings.Repeat("The player left the bench and argued with the table officials. ", 6),
		PersonNotified: true,
		Signature:      signed(t),
	}
}

func reimbursement(t *testing.T) *model.ReimbursementRequest {
	return &model.ReimbursementRequest{
		PlayerName:    "Sam Smith",
		ClubName:      "Hills Raiders",
		TeamName:      "U14 Boys",
		Amount:        150,
		Reason:        "Season ending injury",
		AccountName:   "S Smith",
		BSB:           36001,
		AccountNumber: 12345678,
		Date:          "2024-03-05",
		IsUnder18:     true,
		GuardianName:  null.StringFrom("Alex Smith"),
		GuardianEmail: null.StringFrom("alex@example.org"),
		Signature:     signed(t),
	}
}

func TestFormat(t *testing.T) {
	for in, want := range map[string]string{
		"2024-03-05":               "05-03-2024",
		"2024-12-31T00:00:00.000Z": "31-12-2024",
		"05/03/2024":               "05/03/2024",
		"":                         "",
	} {
		assert.Equal(t, want, FormatDate(in), in)
	}
	for in, want := range map[string]string{
		"13:30":        "01:30 pm",
		"13:30:00.000": "01:30 pm",
		"00:05":        "12:05 am",
		"12:00":        "12:00 pm",
		"09:15":        "09:15 am",
		"noon":         "noon",
	} {
		assert.Equal(t, want, FormatTime(in), in)
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Direct ")
	require.NoError(t, err)
	assert.Equal(t, StrategyDirect, s)
	_, err = ParseStrategy("latex")
	assert.Error(t, err)
}

func TestDirectDraw(t *testing.T) {
	r, err := New(StrategyDirect, nil)
	require.NoError(t, err)

	for _, doc := range []model.Document{tribunal(t), reimbursement(t)} {
		first, err := r.Render(context.Background(), doc)
		require.NoError(t, err, doc.Kind())
		second, err := r.Render(context.Background(), doc)
		require.NoError(t, err, doc.Kind())

		pages, err := Verify(first)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pages, 1)

		firstText, err := pdftext.Extract(first)
		require.NoError(t, err)
		secondText, err := pdftext.Extract(second)
		require.NoError(t, err)
		assert.Equal(t, firstText, secondText, "rendering twice yields the same content")
		assert.Contains(t, firstText, doc.Sheet().Title)
	}
}

func TestDirectDrawRejectsBadSignature(t *testing.T) {
	doc := tribunal(t)
	doc.Signature = "data:text/plain;base64,aGVsbG8="

	_, err := DirectDraw{}.Render(context.Background(), doc)
	assert.ErrorIs(t, err, signature.ErrNotImage)
}

func TestTemplateFill(t *testing.T) {
	tpl, err := NewTemplate(nil)
	require.NoError(t, err)

	doc := tribunal(t)
	doc.Summary = "<script>alert(1)</script>"
	html, err := tpl.Fill(doc)
	require.NoError(t, err)

	c := model.DefaultCatalog()
	assert.Contains(t, html, "REPORT FORM")
	assert.Contains(t, html, "05-03-2024 <strong>at</strong> 01:30 pm")
	assert.Contains(t, html, "Raiders (Red) <strong>vs</strong> Hawks (Blue)")
	assert.Contains(t, html, "<li>"+c.Allegations[0]+"</li>")
	assert.Less(t, strings.Index(html, c.Allegations[0]), strings.Index(html, c.Allegations[2]))
	assert.Contains(t, html, "<span>Person Notified:</span> Yes")
	assert.Contains(t, html, `<div class="header-img"><img src="data:image/png;base64,iVBORw0KGgo`)
	assert.Equal(t, 2, strings.Count(html, `<img src="data:image/png;base64,`), "logo and signature")
	assert.NotContains(t, html, "<script>")

	doc.Allegations = nil
	doc.PersonNotified = false
	doc.Signature = "javascript:alert(1)"
	html, err = tpl.Fill(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "<p>None</p>")
	assert.Contains(t, html, "<span>Person Notified:</span> No")
	assert.NotContains(t, html, `alt="Signature"`)
	assert.NotContains(t, html, "javascript:")

	html, err = tpl.Fill(reimbursement(t))
	require.NoError(t, err)
	assert.Contains(t, html, "REIMBURSEMENT FORM")
	assert.Contains(t, html, "036-001")
	assert.Contains(t, html, "alex@example.org")
	assert.NotContains(t, html, "header-img\"", "only the tribunal report carries the logo")
}

type rasterizerFunc func(ctx context.Context, html string) ([]byte, error)

func (f rasterizerFunc) Rasterize(ctx context.Context, html string) ([]byte, error) {
	return f(ctx, html)
}

func TestTemplateStrategyVerified(t *testing.T) {
	doc := tribunal(t)
	pdf, err := DirectDraw{}.Render(context.Background(), doc)
	require.NoError(t, err)

	var seen string
	r, err := New(StrategyTemplate, rasterizerFunc(func(_ context.Context, html string) ([]byte, error) {
		seen = html
		return pdf, nil
	}))
	require.NoError(t, err)

	out, err := r.Render(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, pdf, out)
	assert.Contains(t, seen, "Hills Stadium")
}

func TestTemplateIsRepeatable(t *testing.T) {
	tpl, err := NewTemplate(nil)
	require.NoError(t, err)

	for _, doc := range []model.Document{tribunal(t), reimbursement(t)} {
		first, err := tpl.Fill(doc)
		require.NoError(t, err, doc.Kind())
		second, err := tpl.Fill(doc)
		require.NoError(t, err, doc.Kind())
		assert.Equal(t, first, second, doc.Kind())

		pdf, err := DirectDraw{}.Render(context.Background(), doc)
		require.NoError(t, err)

		var seen []string
		r, err := New(StrategyTemplate, rasterizerFunc(func(_ context.Context, html string) ([]byte, error) {
			seen = append(seen, html)
			return pdf, nil
		}))
		require.NoError(t, err)

		_, err = r.Render(context.Background(), doc)
		require.NoError(t, err)
		_, err = r.Render(context.Background(), doc)
		require.NoError(t, err)
		require.Len(t, seen, 2)
		assert.Equal(t, seen[0], seen[1], "the rasterizer gets the same page each time")
		assert.Equal(t, first, seen[0])
	}
}

func TestTemplateAdultContact(t *testing.T) {
	tpl, err := NewTemplate(nil)
	require.NoError(t, err)

	doc := reimbursement(t)
	doc.IsUnder18 = false
	doc.GuardianNumber = null.StringFrom("0400999888")
	html, err := tpl.Fill(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "<span>Contact Number:</span> 0400999888")
	assert.Contains(t, html, "alex@example.org")

	doc.GuardianEmail = null.String{}
	html, err = tpl.Fill(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "Contact Email")
}

func TestVerifiedRejects(t *testing.T) {
	for _, tc := range []struct {
		name string
		out  []byte
		err  error
		want error
	}{
		{name: "empty", out: nil, want: ErrEmptyDocument},
		{name: "garbage", out: []byte("%PDF-1.4 not really"), want: ErrInvalidDocument},
		{name: "upstream", err: context.DeadlineExceeded, want: context.DeadlineExceeded},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New(StrategyTemplate, rasterizerFunc(func(context.Context, string) ([]byte, error) {
				return tc.out, tc.err
			}))
			require.NoError(t, err)
			_, err = r.Render(context.Background(), tribunal(t))
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	_, err := New(StrategyTemplate, nil)
	assert.Error(t, err)
}
