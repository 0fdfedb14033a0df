package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

const KindReimbursement = "reimbursement"

type ReimbursementRequest struct {
	bun.BaseModel `bun:"reimbursement_forms,alias:rf"`

	ID            int64   `bun:",pk,autoincrement" json:"id"`
	DocumentID    string  `bun:",notnull,unique" json:"documentId"`
	PlayerName    string  `bun:",notnull" json:"player_name"`
	ClubName      string  `bun:",notnull" json:"club_name"`
	TeamName      string  `bun:",notnull" json:"team_name"`
	Amount        float64 `bun:",notnull" json:"amount"`
	Reason        string  `bun:",notnull" json:"reason"`
	AccountName   string  `bun:",notnull" json:"account_name"`
	BSB           int64   `bun:"bsb,notnull" json:"bsb"`
	AccountNumber int64   `bun:",notnull" json:"account_number"`
	Signature     string  `json:"signature"`
	Date          string  `bun:",notnull" json:"date"`
	IsUnder18     bool    `bun:"is_under_18,notnull" json:"is_under_18"`

	GuardianName   null.String `bun:"contact_name" json:"contact_name"`
	GuardianNumber null.String `bun:"contact_number" json:"contact_number"`
	GuardianEmail  null.String `bun:"contact_email" json:"contact_email"`

	CreatedAt time.Time `bun:",notnull" json:"createdAt"`
}

func (r *ReimbursementRequest) SetCreatedAt(t time.Time) {
	r.CreatedAt = t
}

func (r *ReimbursementRequest) SetDocumentID(id string) {
	r.DocumentID = id
}

func (r *ReimbursementRequest) Kind() string {
	return KindReimbursement
}

// FormattedBSB renders the branch number as the usual six digits, e.g. 036-001.
func (r *ReimbursementRequest) FormattedBSB() string {
	s := fmt.Sprintf("%06d", r.BSB)
	return s[:3] + "-" + s[3:]
}

func (r *ReimbursementRequest) FormattedAmount() string {
	return "$" + strconv.FormatFloat(r.Amount, 'f', 2, 64)
}

func (r *ReimbursementRequest) Sheet() Sheet {
	lines := []Line{
		{"Player Name", r.PlayerName},
		{"Club", r.ClubName},
		{"Team", r.TeamName},
		{"Amount", r.FormattedAmount()},
		{"Account Name", r.AccountName},
		{"BSB", r.FormattedBSB()},
		{"Account Number", strconv.FormatInt(r.AccountNumber, 10)},
		{"Date", r.Date},
		{"Contact Name", r.GuardianName.String},
	}
	if r.GuardianNumber.Valid {
		lines = append(lines, Line{"Contact Number", r.GuardianNumber.String})
	}
	if r.GuardianEmail.Valid {
		lines = append(lines, Line{"Contact Email", r.GuardianEmail.String})
	}

	return Sheet{
		Title: "Reimbursement Request",
		Lines: lines,
		Paragraphs: []Paragraph{
			{Heading: "Reason for Reimbursement:", Text: r.Reason},
		},
		Signature: r.Signature,
		Filename:  "Reimbursement_Form.pdf",
	}
}
