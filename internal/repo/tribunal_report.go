package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/repo/selector"
)

type TribunalReport struct {
	DB  *bun.DB
	sel selector.S[model.TribunalReport]
}

func NewTribunalReport(db *bun.DB) *TribunalReport {
	return &TribunalReport{
		DB:  db,
		sel: selector.New[model.TribunalReport](db),
	}
}

// CreateTribunalReport assigns the document id and creation time, then inserts the row.
func (r *TribunalReport) CreateTribunalReport(ctx context.Context, report *model.TribunalReport) error {
	return stage(ctx, r.DB, report)
}

func (r *TribunalReport) DeleteTribunalReport(ctx context.Context, report *model.TribunalReport) error {
	return unstage(ctx, r.DB, report)
}

// GetTribunalReportByDocumentID reads back a staged report. Intake never reads rows,
// so only tests and manual diagnosis reach it.
func (r *TribunalReport) GetTribunalReportByDocumentID(ctx context.Context, documentID string) (*model.TribunalReport, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("document_id = ?", documentID)
	})
}

// CountTribunalReports counts rows still staged; after a clean submission it is zero.
// Used by tests.
func (r *TribunalReport) CountTribunalReports(ctx context.Context) (int, error) {
	return r.sel.Count(ctx)
}
