package casedata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ecourts-backend/lib/fileout"
	"ecourts-backend/lib/scrapers/ecourts"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Column order is part of the output contract; downstream consumers
// parse these files.
var causeListCsvHeader = []string{
	"serial_number",
	"case_number",
	"case_title",
	"petitioner",
	"respondent",
	"advocate",
	"court_room",
	"time",
}

func causeListCsvRows(list *ecourts.CauseList) [][]string {
	rows := make([][]string, len(list.Entries))
	for i, e := range list.Entries {
		rows[i] = []string{
			strconv.Itoa(e.SerialNumber),
			e.CaseNumber,
			e.CaseTitle,
			e.Petitioner,
			e.Respondent,
			e.Advocate,
			e.CourtRoom,
			e.Time,
		}
	}
	return rows
}

// WriteCauseList serializes a cause list to dest in the given format.
// A zero-entry list in CSV form still produces the header row.
func WriteCauseList(list *ecourts.CauseList, format fileout.Format, dest string) error {
	switch format {
	case fileout.FormatJson:
		return fileout.WriteJson(dest, list)
	case fileout.FormatCsv:
		return fileout.WriteCsv(dest, causeListCsvHeader, causeListCsvRows(list))
	case fileout.FormatText:
		return fileout.WriteText(dest, RenderCauseListText(list))
	}
	return fmt.Errorf("unknown output format %q", format)
}

func RenderCauseListText(list *ecourts.CauseList) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Cause List - Court %s - %s", list.CourtCode, list.Date.Format("02-01-2006")))
	t.AppendHeader(table.Row{"Sr No", "Case Number", "Case Title", "Petitioner", "Respondent", "Advocate", "Court Room", "Time"})
	for _, e := range list.Entries {
		t.AppendRow(table.Row{e.SerialNumber, e.CaseNumber, e.CaseTitle, e.Petitioner, e.Respondent, e.Advocate, e.CourtRoom, e.Time})
	}
	return t.Render() + "\n"
}

var recordCsvHeader = []string{
	"cnr",
	"case_type",
	"case_number",
	"year",
	"case_title",
	"court_name",
	"status",
	"filing_date",
	"next_hearing",
	"serial_number",
	"is_listed_today",
	"is_listed_tomorrow",
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006")
}

func recordCsvRow(rec *ecourts.CaseRecord) []string {
	return []string{
		rec.Cnr,
		rec.CaseType,
		rec.CaseNumber,
		rec.Year,
		rec.CaseTitle,
		rec.CourtName,
		rec.Status,
		formatDate(rec.FilingDate),
		formatDate(rec.HearingDate),
		strconv.Itoa(rec.SerialNumber),
		strconv.FormatBool(rec.ListedToday),
		strconv.FormatBool(rec.ListedTomorrow),
	}
}

func WriteRecord(rec *ecourts.CaseRecord, format fileout.Format, dest string) error {
	switch format {
	case fileout.FormatJson:
		return fileout.WriteJson(dest, rec)
	case fileout.FormatCsv:
		return fileout.WriteCsv(dest, recordCsvHeader, [][]string{recordCsvRow(rec)})
	case fileout.FormatText:
		return fileout.WriteText(dest, RenderRecordText(rec))
	}
	return fmt.Errorf("unknown output format %q", format)
}

// RenderRecordText is the human-readable line-per-field rendering the
// CLI prints after a successful search.
func RenderRecordText(rec *ecourts.CaseRecord) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			value = "N/A"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}
	line("CNR", rec.Cnr)
	line("Case", rec.CaseNumber)
	line("Type", rec.CaseType)
	line("Year", rec.Year)
	line("Title", rec.CaseTitle)
	line("Court", rec.CourtName)
	line("Status", rec.Status)
	line("Filing Date", formatDate(rec.FilingDate))
	line("Next Hearing", formatDate(rec.HearingDate))
	if rec.SerialNumber > 0 {
		line("Serial Number", strconv.Itoa(rec.SerialNumber))
	} else {
		line("Serial Number", "")
	}
	line("Listed Today", strconv.FormatBool(rec.ListedToday))
	line("Listed Tomorrow", strconv.FormatBool(rec.ListedTomorrow))
	return b.String()
}
