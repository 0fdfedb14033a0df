package types

// TribunalReportFields is the wire shape of a referee tribunal report.
type TribunalReportFields struct {
	Name           string   `json:"name" validate:"required"`
	CoOfficial     string   `json:"co_official" validate:"required"`
	Team1Name      string   `json:"team_1_name" validate:"required"`
	Team1Colour    string   `json:"team_1_colour" validate:"required,teamcolour"`
	Team2Name      string   `json:"team_2_name" validate:"required"`
	Team2Colour    string   `json:"team_2_colour" validate:"required,teamcolour"`
	Date           string   `json:"date" validate:"required,isodate"`
	Time           string   `json:"time" validate:"required,clocktime"`
	Venue          string   `json:"venue" validate:"required"`
	PersonOnReport string   `json:"person_on_report" validate:"required"`
	Allegations    []string `json:"allegations" validate:"min=1,dive,allegation"`
	Summary        string   `json:"summary" validate:"required"`
	PersonNotified bool     `json:"person_notified"`
	Signature      string   `json:"signature" validate:"omitempty,signature"`
}

type TribunalReportRequest struct {
	Data TribunalReportFields `json:"data"`
}
