package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/repo/selector"
)

type ReimbursementRequest struct {
	DB  *bun.DB
	sel selector.S[model.ReimbursementRequest]
}

func NewReimbursementRequest(db *bun.DB) *ReimbursementRequest {
	return &ReimbursementRequest{
		DB:  db,
		sel: selector.New[model.ReimbursementRequest](db),
	}
}

func (r *ReimbursementRequest) CreateReimbursementRequest(ctx context.Context, req *model.ReimbursementRequest) error {
	return stage(ctx, r.DB, req)
}

func (r *ReimbursementRequest) DeleteReimbursementRequest(ctx context.Context, req *model.ReimbursementRequest) error {
	return unstage(ctx, r.DB, req)
}

// GetReimbursementRequestByDocumentID reads back a staged request. Intake never reads rows,
// so only tests and manual diagnosis reach it.
func (r *ReimbursementRequest) GetReimbursementRequestByDocumentID(ctx context.Context, documentID string) (*model.ReimbursementRequest, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("document_id = ?", documentID)
	})
}

// CountReimbursementRequests counts rows still staged; after a clean submission it is zero.
// Used by tests.
func (r *ReimbursementRequest) CountReimbursementRequests(ctx context.Context) (int, error) {
	return r.sel.Count(ctx)
}
