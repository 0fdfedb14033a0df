package model

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

const KindTribunal = "tribunal"

type TribunalReport struct {
	bun.BaseModel `bun:"tribunal_report_forms,alias:trf"`

	ID             int64     `bun:",pk,autoincrement" json:"id"`
	DocumentID     string    `bun:",notnull,unique" json:"documentId"`
	Name           string    `bun:",notnull" json:"name"`
	CoOfficial     string    `bun:",notnull" json:"co_official"`
	Team1Name      string    `bun:"team_1_name,notnull" json:"team_1_name"`
	Team1Colour    string    `bun:"team_1_colour,notnull" json:"team_1_colour"`
	Team2Name      string    `bun:"team_2_name,notnull" json:"team_2_name"`
	Team2Colour    string    `bun:"team_2_colour,notnull" json:"team_2_colour"`
	Date           string    `bun:",notnull" json:"date"`
	Time           string    `bun:",notnull" json:"time"`
	Venue          string    `bun:",notnull" json:"venue"`
	PersonOnReport string    `bun:",notnull" json:"person_on_report"`
	Allegations    []string  `json:"allegations"`
	Summary        string    `bun:",notnull" json:"summary"`
	PersonNotified bool      `bun:",notnull" json:"person_notified"`
	Signature      string    `json:"signature"`
	CreatedAt      time.Time `bun:",notnull" json:"createdAt"`
}

func (r *TribunalReport) SetCreatedAt(t time.Time) {
	r.CreatedAt = t
}

func (r *TribunalReport) SetDocumentID(id string) {
	r.DocumentID = id
}

func (r *TribunalReport) Kind() string {
	return KindTribunal
}

// SelectedAllegations is the checked allegations in catalog order.
func (r *TribunalReport) SelectedAllegations() []string {
	return DefaultCatalog().SelectedAllegations(r.Allegations)
}

func (r *TribunalReport) Sheet() Sheet {
	return Sheet{
		Title: "Referee Tribunal Report",
		Lines: []Line{
			{"Name", r.Name},
			{"Co-Official", r.CoOfficial},
			{"Team 1", fmt.Sprintf("%s (%s)", r.Team1Name, r.Team1Colour)},
			{"Team 2", fmt.Sprintf("%s (%s)", r.Team2Name, r.Team2Colour)},
			{"Date", r.Date},
			{"Time", r.Time},
			{"Venue", r.Venue},
			{"Person on Report", r.PersonOnReport},
			{"Person Notified", yesNo(r.PersonNotified)},
		},
		Paragraphs: []Paragraph{
			{Heading: "Summary of Facts:", Text: r.Summary},
		},
		Lists: []ListSection{
			{Heading: "Allegations:", Items: r.SelectedAllegations(), Empty: "None"},
		},
		Signature: r.Signature,
		Filename:  "Referee_Tribunal_Report.pdf",
	}
}
