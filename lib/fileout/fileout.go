package fileout

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Format string

const (
	FormatJson Format = "json"
	FormatCsv  Format = "csv"
	FormatText Format = "text"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJson, FormatCsv, FormatText:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Atomic runs write against a temporary file in the destination's
// directory and renames it over dest only after write succeeds. A
// failed write never leaves a truncated file at dest, and the rename
// is atomic with respect to concurrent writers of the same path.
func Atomic(dest string, write func(w io.Writer) error) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

func WriteJson(dest string, v any) error {
	return Atomic(dest, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	})
}

// WriteCsv writes a header row followed by the given rows. Zero rows
// still produces a file containing exactly the header.
func WriteCsv(dest string, header []string, rows [][]string) error {
	return Atomic(dest, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func WriteText(dest string, text string) error {
	return Atomic(dest, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}
