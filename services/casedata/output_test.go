package casedata

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ecourts-backend/lib/fileout"
	"ecourts-backend/lib/scrapers/ecourts"
	"ecourts-backend/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWriteCauseListCsvRoundTrip(t *testing.T) {
	list := demoCauseList("01", timezone.Now())
	dest := filepath.Join(t.TempDir(), "cause_list.csv")

	err := WriteCauseList(list, fileout.FormatCsv, dest)
	require.NoError(t, err)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, causeListCsvHeader, records[0])
	require.Len(t, records, len(list.Entries)+1)

	// row-by-row, same field values in the same order
	diff := cmp.Diff(causeListCsvRows(list), records[1:])
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestWriteEmptyCauseListCsv(t *testing.T) {
	list := &ecourts.CauseList{CourtCode: "01", Date: timezone.Now()}
	dest := filepath.Join(t.TempDir(), "empty.csv")

	err := WriteCauseList(list, fileout.FormatCsv, dest)
	require.NoError(t, err)

	contents, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "serial_number,case_number,case_title,petitioner,respondent,advocate,court_room,time\n", string(contents))
}

func TestWriteRecordJson(t *testing.T) {
	rec := &ecourts.CaseRecord{
		Cnr:         "DLCT01-123456-2023",
		CaseType:    "Civil",
		CaseNumber:  "12345/2023",
		Year:        "2023",
		CourtName:   "Delhi High Court",
		HearingDate: time.Date(2025, 10, 20, 0, 0, 0, 0, timezone.Location),
		ListedToday: true,
	}
	dest := filepath.Join(t.TempDir(), "case.json")

	err := WriteRecord(rec, fileout.FormatJson, dest)
	require.NoError(t, err)

	contents, err := os.ReadFile(dest)
	require.NoError(t, err)

	var back ecourts.CaseRecord
	require.NoError(t, json.Unmarshal(contents, &back))
	require.Equal(t, rec.Cnr, back.Cnr)
	require.Equal(t, rec.CaseNumber, back.CaseNumber)
	require.True(t, back.ListedToday)
}

func TestRenderRecordText(t *testing.T) {
	rec := &ecourts.CaseRecord{
		Cnr:        "DLCT01-123456-2023",
		CaseNumber: "12345/2023",
		CourtName:  "Delhi High Court",
	}
	text := RenderRecordText(rec)
	require.Contains(t, text, "CNR: DLCT01-123456-2023\n")
	require.Contains(t, text, "Court: Delhi High Court\n")
	// absent optional fields render as N/A, not as empty noise
	require.Contains(t, text, "Next Hearing: N/A\n")
}

func TestRenderCauseListText(t *testing.T) {
	list := demoCauseList("01", timezone.Now())
	text := RenderCauseListText(list)
	require.Contains(t, text, "12345/2023")
	require.Contains(t, text, "Adv. Khan")
}
