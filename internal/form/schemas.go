package form

import (
	"strings"
	"time"

	"github.com/DS-LIT/hrba-forms/internal/model"
)

const (
	SchemaTribunal      = model.KindTribunal
	SchemaReimbursement = model.KindReimbursement
)

func required(msg string) Rule {
	return Rule{Tag: "required", Message: msg, Required: true}
}

// Today is the default of date fields that start on the current day.
func Today() any {
	return time.Now().Format(time.DateOnly)
}

func TribunalSchema(c *model.Catalog) *Schema {
	return &Schema{
		Name:  SchemaTribunal,
		Title: "Referee Tribunal Report",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: KindText, Rules: []Rule{required("Name is required")}},
			{Name: "coOfficial", Label: "Co-Official", Kind: KindText, Rules: []Rule{required("Co-official name is required")}},
			{Name: "team1.text", Label: "Team 1", Kind: KindText, Rules: []Rule{required("Team 1 name is required")}},
			{Name: "team1.colour", Label: "Team 1 Colour", Kind: KindSelect, Default: "red", Options: c.Colours, Rules: []Rule{
				required("Team 1 colour is required"),
				{Tag: "teamcolour", Message: "Team 1 colour must be one of the listed colours"},
			}},
			{Name: "team2.text", Label: "Team 2", Kind: KindText, Rules: []Rule{required("Team 2 name is required")}},
			{Name: "team2.colour", Label: "Team 2 Colour", Kind: KindSelect, Default: "blue", Options: c.Colours, Rules: []Rule{
				required("Team 2 colour is required"),
				{Tag: "teamcolour", Message: "Team 2 colour must be one of the listed colours"},
			}},
			{Name: "date", Label: "Date", Kind: KindDate, Rules: []Rule{
				required("Date is required"),
				{Tag: "isodate", Message: "Date must be a valid date"},
			}},
			{Name: "time", Label: "Time", Kind: KindTime, Rules: []Rule{
				required("Time is required"),
				{Tag: "clocktime", Message: "Time must be a valid time"},
			}},
			{Name: "venue", Label: "Venue", Kind: KindText, Rules: []Rule{required("Venue is required")}},
			{Name: "personOnReport", Label: "Person on Report", Kind: KindText, Rules: []Rule{required("Person on report is required")}},
			{Name: "allegations", Label: "Allegations", Kind: KindList, Options: c.Allegations, Rules: []Rule{
				{Tag: "min=1", Message: "At least one allegation must be selected", Required: true},
				{Tag: "dive,allegation", Message: "Allegations must come from the list"},
			}},
			{Name: "summary", Label: "Summary of Facts", Kind: KindText, Rules: []Rule{required("Summary is required")}},
			{Name: "personNotified", Label: "Person Notified", Kind: KindBool},
		},
	}
}

func ReimbursementSchema() *Schema {
	under18 := &Condition{Driver: "isUnder18", Equals: true}
	return &Schema{
		Name:  SchemaReimbursement,
		Title: "Reimbursement Form",
		Fields: []Field{
			{Name: "playerName", Label: "Player Name", Kind: KindText, Rules: []Rule{required("Player name is required")}},
			{Name: "clubName", Label: "Club", Kind: KindText, Rules: []Rule{required("Club name is required")}},
			{Name: "teamName", Label: "Team", Kind: KindText, Rules: []Rule{required("Team name is required")}},
			{Name: "amount", Label: "Amount", Kind: KindNumber, Rules: []Rule{
				required("Amount is required"),
				{Tag: "numeric", Message: "Amount must be a number"},
				{Tag: "excludes=-", Message: "Amount cannot be negative"},
			}},
			{Name: "reason", Label: "Reason", Kind: KindText, Rules: []Rule{required("Reason is required")}},
			{Name: "accountName", Label: "Account Name", Kind: KindText, Rules: []Rule{required("Account name is required")}},
			{Name: "bsb", Label: "BSB", Kind: KindNumber, Rules: []Rule{
				required("BSB is required"),
				{Tag: "digits", Message: "BSB must be numeric"},
			}},
			{Name: "accountNumber", Label: "Account Number", Kind: KindNumber, Rules: []Rule{
				required("Account number is required"),
				{Tag: "digits", Message: "Account number must be numeric"},
			}},
			{Name: "date", Label: "Date", Kind: KindDate, DefaultFunc: Today, Rules: []Rule{
				required("Date is required"),
				{Tag: "isodate", Message: "Date must be a valid date"},
			}},
			{Name: "isUnder18", Label: "Player is under 18", Kind: KindBool},
			{Name: "contactName", Label: "Contact Name", Kind: KindText, Rules: []Rule{
				{Tag: "required", Message: "Contact name is required", Required: true, When: under18},
			}},
			{Name: "contactNumber", Label: "Contact Number", Kind: KindText, Rules: []Rule{
				{Tag: "required", Message: "Contact number is required", Required: true, When: under18},
				{Tag: "digits", Message: "Contact number must be numeric"},
			}},
			{Name: "contactEmail", Label: "Contact Email", Kind: KindText, Rules: []Rule{
				{Tag: "required", Message: "Contact email is required", Required: true, When: under18},
				{Tag: "looseemail", Message: "Invalid email address"},
			}},
		},
		Mirrors: []Mirror{
			{From: "playerName", To: "contactName", Driver: "isUnder18"},
		},
	}
}

// Schemas returns every schema by name.
func Schemas(c *model.Catalog) map[string]*Schema {
	return map[string]*Schema{
		SchemaTribunal:      TribunalSchema(c),
		SchemaReimbursement: ReimbursementSchema(),
	}
}

// Capitalize upper-cases the first letter, as colours are stored ("red" -> "Red").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
