package fileout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWriteCsvHeaderOnly(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.csv")
	header := []string{"serial_number", "case_number"}

	err := WriteCsv(dest, header, nil)
	require.NoError(t, err)

	contents, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "serial_number,case_number\n", string(contents))
}

func TestWriteCsvRoundTrip(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "rows.csv")
	header := []string{"serial_number", "case_number", "case_title"}
	rows := [][]string{
		{"1", "12345/2023", "John Doe vs. Jane Smith"},
		{"2", "67890/2023", "ABC Pvt Ltd vs. XYZ Traders"},
	}

	err := WriteCsv(dest, header, rows)
	require.NoError(t, err)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	expected := append([][]string{header}, rows...)
	diff := cmp.Diff(expected, records)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestAtomicLeavesNoFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.json")

	err := Atomic(dest, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return fmt.Errorf("simulated write failure")
	})
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	require.True(t, os.IsNotExist(statErr), "failed write must not leave a file behind")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "temp files must be cleaned up")
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "csv", "text"} {
		_, err := ParseFormat(valid)
		require.NoError(t, err)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}
