package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/apperr"
)

func TestDashboard(t *testing.T) {
	p := &Portal{Catalog: model.DefaultCatalog()}
	d := p.Dashboard()

	require.Len(t, d.Sections, 2)
	assert.Equal(t, "Referee Forms", d.Sections[0].Title)
	assert.Equal(t, "Financial", d.Sections[1].Title)

	tribunal := d.Sections[0].Items[0]
	assert.Equal(t, "/tribunal", tribunal.Route)
	require.NotNil(t, tribunal.Schema)
	field, ok := tribunal.Schema.Field("team1.colour")
	require.True(t, ok)
	assert.Equal(t, "red", field.Default)

	reimbursement := d.Sections[1].Items[0]
	require.NotNil(t, reimbursement.Schema)
	date, ok := reimbursement.Schema.Field("date")
	require.True(t, ok)
	assert.NotEmpty(t, date.Default)

	refund := d.Sections[1].Items[1]
	assert.Equal(t, model.EntryKindDocument, refund.Kind)
	assert.Nil(t, refund.Schema)
	assert.Equal(t, "/api/documents/bwa-refund-form.pdf", refund.Download)

	assert.Len(t, d.Allegations, 8)
	assert.Contains(t, d.Colours, "red")
}

func TestSchema(t *testing.T) {
	p := &Portal{Catalog: model.DefaultCatalog()}

	s, err := p.Schema("reimbursement")
	require.NoError(t, err)
	assert.Equal(t, "reimbursement", s.Name)

	_, err = p.Schema("timesheet")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDocumentPath(t *testing.T) {
	dir := t.TempDir()
	p := &Portal{Catalog: model.DefaultCatalog(), DocumentsDir: dir}

	_, err := p.DocumentPath("bwa-refund-form.pdf")
	assert.ErrorIs(t, err, apperr.ErrNotFound, "file missing from disk")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "BWA Refund Form.pdf"), []byte("%PDF-1.4"), 0o644))
	got, err := p.DocumentPath("bwa-refund-form.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "BWA Refund Form.pdf"), got)

	_, err = p.DocumentPath("../../etc/passwd")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTheme(t *testing.T) {
	p := &Portal{Catalog: model.DefaultCatalog()}
	assert.Equal(t, model.ThemeDark, p.Theme("dark").Mode)
	assert.Equal(t, model.ThemeLight, p.Theme("").Mode)
}
