package casedata

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ecourts-backend/lib/scrapers/ecourts"
	"ecourts-backend/lib/timezone"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testService(t *testing.T) (Service, *QueryLog) {
	sqlite, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	queries, err := NewQueryLog(sqlite)
	require.NoError(t, err)

	// demo mode never touches the scraper client
	return NewService(nil, queries, true), queries
}

func TestDemoSearchByCnr(t *testing.T) {
	svc, queries := testService(t)
	ctx := context.Background()

	rec, err := svc.SearchByCnr(ctx, "DLCT01-123456-2023")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "DLCT01-123456-2023", rec.Cnr)
	require.Equal(t, "Delhi High Court", rec.CourtName)
	require.True(t, rec.ListedToday)
	require.False(t, rec.ListedTomorrow)

	rec, err = svc.SearchByCnr(ctx, "ZZZZ99-999999-1999")
	require.NoError(t, err, "unknown case is not found, not an error")
	require.Nil(t, rec)

	logged, err := queries.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logged, 2)
	for _, q := range logged {
		require.Equal(t, "cnr", q.Kind)
	}
}

func TestDemoSearchByCase(t *testing.T) {
	svc, _ := testService(t)

	rec, err := svc.SearchByCase(context.Background(), "Commercial", "65432/2022", "2022")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "MHMC02-654321-2022", rec.Cnr)
	require.False(t, rec.ListedToday)
	require.True(t, rec.ListedTomorrow)
}

func TestDemoCauseList(t *testing.T) {
	svc, queries := testService(t)

	list, err := svc.CauseList(context.Background(), "01", timezone.Now())
	require.NoError(t, err)
	require.Len(t, list.Entries, 5)
	require.Equal(t, "01", list.CourtCode)
	require.Equal(t, 1, list.Entries[0].SerialNumber)

	logged, err := queries.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	require.Equal(t, "causelist", logged[0].Kind)
	require.True(t, logged[0].Found)
}

func TestSafeCaseFilename(t *testing.T) {
	require.Equal(t, "case_12345_2023.pdf", SafeCaseFilename("12345/2023"))
	require.Equal(t, "case_DLCT01-123456-2023.pdf", SafeCaseFilename("DLCT01-123456-2023"))
}

func TestDownloadCasePdfRequiresCnr(t *testing.T) {
	svc := NewService(nil, nil, false)
	rec := &ecourts.CaseRecord{CaseType: "Civil", CaseNumber: "12345/2023", Year: "2023"}

	_, err := svc.DownloadCasePdf(context.Background(), rec, t.TempDir())
	var downloadErr *ecourts.DownloadError
	require.ErrorAs(t, err, &downloadErr)
	require.Contains(t, downloadErr.Error(), "no cnr")
}

func TestDemoDownloadCasePdf(t *testing.T) {
	svc, _ := testService(t)
	outputDir := t.TempDir()

	rec, err := svc.SearchByCnr(context.Background(), "DLCT01-123456-2023")
	require.NoError(t, err)

	path, err := svc.DownloadCasePdf(context.Background(), rec, outputDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outputDir, "case_DLCT01-123456-2023.pdf"), path)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(contents), "%PDF-"))
}
