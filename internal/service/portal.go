package service

import (
	"os"
	"path"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
	"github.com/DS-LIT/hrba-forms/internal/form"
	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/apperr"
)

type DashboardEntry struct {
	model.DashboardEntry
	Schema *form.Schema `json:"schema,omitempty"`
}

type DashboardSection struct {
	Title string           `json:"title"`
	Items []DashboardEntry `json:"items"`
}

type Dashboard struct {
	Sections    []DashboardSection `json:"sections"`
	Allegations []string           `json:"allegations"`
	Colours     []string           `json:"colours"`
}

// Portal serves the read-only data a front end needs to draw the forms.
type Portal struct {
	Catalog      *model.Catalog
	DocumentsDir string
}

func NewPortal(conf *appconfig.Config) *Portal {
	return &Portal{
		Catalog:      model.DefaultCatalog(),
		DocumentsDir: conf.DocumentsDir,
	}
}

func (s *Portal) Dashboard() *Dashboard {
	schemas := form.Schemas(s.Catalog)

	return &Dashboard{
		Sections: lo.Map(s.Catalog.Sections, func(sec model.DashboardSection, _ int) DashboardSection {
			return DashboardSection{
				Title: sec.Title,
				Items: lo.Map(sec.Items, func(e model.DashboardEntry, _ int) DashboardEntry {
					entry := DashboardEntry{DashboardEntry: e}
					if schema, ok := schemas[e.Slug]; ok && e.Kind == model.EntryKindForm {
						entry.Schema = schema.Resolved()
					}
					return entry
				}),
			}
		}),
		Allegations: s.Catalog.Allegations,
		Colours:     s.Catalog.Colours,
	}
}

func (s *Portal) Schema(name string) (*form.Schema, error) {
	schema, ok := form.Schemas(s.Catalog)[name]
	if !ok {
		return nil, apperr.ErrNotFound.Msg("form %q does not exist", name)
	}
	return schema.Resolved(), nil
}

func (s *Portal) Theme(mode string) model.Theme {
	return model.ThemeFor(mode)
}

// DocumentPath resolves a download name such as bwa-refund-form.pdf to the file in DocumentsDir.
func (s *Portal) DocumentPath(file string) (string, error) {
	var entry model.DashboardEntry
	found := false
	for _, sec := range s.Catalog.Sections {
		entry, found = lo.Find(sec.Items, func(e model.DashboardEntry) bool {
			return e.Kind == model.EntryKindDocument && path.Base(e.Download) == file
		})
		if found {
			break
		}
	}
	if !found {
		return "", apperr.ErrNotFound.Msg("document %q does not exist", file)
	}

	p := filepath.Join(s.DocumentsDir, filepath.Base(entry.Document))
	if _, err := os.Stat(p); err != nil {
		return "", apperr.ErrNotFound.Msg("document %q is not available", file).WithCause(err)
	}
	return p, nil
}
