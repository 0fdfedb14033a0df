package portal

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/DS-LIT/hrba-forms/internal/form"
	"github.com/DS-LIT/hrba-forms/internal/model/types"
)

const wireTimeLayout = "15:04:05.000"

// WireTime turns a picker value such as 13:30 into 13:30:00.000. Seconds
// already present are dropped.
func WireTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < len("15:04") {
		return "", errors.Errorf("portal: invalid time %q", s)
	}
	t, err := time.Parse("15:04", s[:len("15:04")])
	if err != nil {
		return "", errors.Wrapf(err, "portal: invalid time %q", s)
	}
	return t.Format(wireTimeLayout), nil
}

func TribunalFields(v form.Values, signature string) (types.TribunalReportFields, error) {
	t, err := WireTime(v.String("time"))
	if err != nil {
		return types.TribunalReportFields{}, err
	}

	return types.TribunalReportFields{
		Name:           v.String("name"),
		CoOfficial:     v.String("coOfficial"),
		Team1Name:      v.String("team1.text"),
		Team1Colour:    form.Capitalize(v.String("team1.colour")),
		Team2Name:      v.String("team2.text"),
		Team2Colour:    form.Capitalize(v.String("team2.colour")),
		Date:           v.String("date"),
		Time:           t,
		Venue:          v.String("venue"),
		PersonOnReport: v.String("personOnReport"),
		Allegations:    append([]string{}, v.Strings("allegations")...),
		Summary:        v.String("summary"),
		PersonNotified: v.Bool("personNotified"),
		Signature:      signature,
	}, nil
}

func ReimbursementFields(v form.Values, signature string) (types.ReimbursementFields, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(v.String("amount")), 64)
	if err != nil {
		return types.ReimbursementFields{}, errors.Wrap(err, "portal: amount")
	}
	bsb, err := parseDigits("bsb", v.String("bsb"))
	if err != nil {
		return types.ReimbursementFields{}, err
	}
	account, err := parseDigits("account number", v.String("accountNumber"))
	if err != nil {
		return types.ReimbursementFields{}, err
	}

	return types.ReimbursementFields{
		PlayerName:    v.String("playerName"),
		ClubName:      v.String("clubName"),
		TeamName:      v.String("teamName"),
		Amount:        amount,
		Reason:        v.String("reason"),
		AccountName:   v.String("accountName"),
		BSB:           bsb,
		AccountNumber: account,
		Signature:     signature,
		Date:          v.String("date"),
		IsUnder18:     v.Bool("isUnder18"),
		ContactName:   v.String("contactName"),
		ContactNumber: v.String("contactNumber"),
		ContactEmail:  v.String("contactEmail"),
	}, nil
}

func parseDigits(name, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "portal: %s", name)
	}
	return n, nil
}
