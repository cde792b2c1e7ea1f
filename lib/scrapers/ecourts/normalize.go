package ecourts

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ecourts-backend/lib/timezone"
)

// CNR format: <court-code>-<digits>-<year>, e.g. DLCT01-123456-2023
var CnrPattern = regexp.MustCompile(`^[A-Z]{4}\d{2}-\d{1,6}-\d{4}$`)

func ValidCnr(s string) bool {
	return CnrPattern.MatchString(s)
}

// the portal has served all three of these at various times
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, timezone.Location)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Normalize converts raw extracted fields into a canonical CaseRecord.
// `now` is caller-supplied so the listed-today/tomorrow flags are
// reproducible under test; production callers pass timezone.Now().
//
// A record with no identifying field at all (no CNR and no complete
// case-number/type/year triple) is a *NormalizationError. A record
// with identity but no hearing date is valid, with both listed flags
// false.
func Normalize(raw RawFields, now time.Time) (*CaseRecord, error) {
	rec := &CaseRecord{
		Cnr:        strings.TrimSpace(raw["cnr"]),
		CaseType:   strings.TrimSpace(raw["case_type"]),
		CaseNumber: strings.TrimSpace(raw["case_number"]),
		Year:       strings.TrimSpace(raw["year"]),
		CaseTitle:  strings.TrimSpace(raw["case_title"]),
		CourtName:  strings.TrimSpace(raw["court_name"]),
		Status:     strings.TrimSpace(raw["status"]),
	}

	if rec.Cnr != "" && !ValidCnr(rec.Cnr) {
		return nil, &NormalizationError{
			Reason: fmt.Sprintf("malformed CNR %q", rec.Cnr),
		}
	}
	hasTriple := rec.CaseNumber != "" && rec.CaseType != "" && rec.Year != ""
	if rec.Cnr == "" && !hasTriple {
		return nil, &NormalizationError{
			Reason: "no identifying field: need a CNR or a complete case-number/type/year",
		}
	}

	if s, ok := raw.Get("serial_number"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			slog.Warn("ignoring malformed serial number", "value", s)
			rec.RawSnippet = appendSnippet(rec.RawSnippet, "serial_number="+s)
		} else {
			rec.SerialNumber = n
		}
	}

	if s, ok := raw.Get("filing_date"); ok {
		t, err := ParseDate(s)
		if err != nil {
			slog.Warn("ignoring malformed filing date", "value", s)
			rec.RawSnippet = appendSnippet(rec.RawSnippet, "filing_date="+s)
		} else {
			rec.FilingDate = t
		}
	}

	if s, ok := raw.Get("next_hearing"); ok {
		t, err := ParseDate(s)
		if err != nil {
			slog.Warn("ignoring malformed hearing date", "value", s)
			rec.RawSnippet = appendSnippet(rec.RawSnippet, "next_hearing="+s)
		} else {
			rec.HearingDate = t
			rec.ListedToday = sameDay(t, now)
			rec.ListedTomorrow = sameDay(t, now.AddDate(0, 0, 1))
		}
	}

	return rec, nil
}

func appendSnippet(snippet, fragment string) string {
	if snippet == "" {
		return fragment
	}
	return snippet + "; " + fragment
}
