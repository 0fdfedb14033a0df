package types

// ReimbursementFields is the wire shape of a reimbursement request.
// Guardian contact details are only required for players under 18.
type ReimbursementFields struct {
	PlayerName    string  `json:"player_name" validate:"required"`
	ClubName      string  `json:"club_name" validate:"required"`
	TeamName      string  `json:"team_name" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	Reason        string  `json:"reason" validate:"required"`
	AccountName   string  `json:"account_name" validate:"required"`
	BSB           int64   `json:"bsb" validate:"gte=0"`
	AccountNumber int64   `json:"account_number" validate:"gte=0"`
	Signature     string  `json:"signature" validate:"omitempty,signature"`
	Date          string  `json:"date" validate:"required,isodate"`
	IsUnder18     bool    `json:"is_under_18"`
	ContactName   string  `json:"contact_name" validate:"required"`
	ContactNumber string  `json:"contact_number" validate:"required_if=IsUnder18 true,omitempty,digits"`
	ContactEmail  string  `json:"contact_email" validate:"required_if=IsUnder18 true,omitempty,looseemail"`
}

type ReimbursementRequest struct {
	Data ReimbursementFields `json:"data"`
}
