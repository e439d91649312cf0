package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// IsLocalSource reports whether a dataset source is a local file path rather
// than a URL.
func IsLocalSource(source string) bool {
	return !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")
}

func rawData(source string, isLocalFile bool) ([]byte, error) {
	var b []byte
	var err error

	if isLocalFile {
		b, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local dataset file: %w", err)
		}
	} else {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("error downloading dataset: %w", err)
		}
		defer resp.Body.Close() // nolint

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("error downloading dataset: unexpected status %s", resp.Status)
		}

		b, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading dataset: %w", err)
		}
	}
	return b, nil
}

// table is a parsed CSV with a header-name to column-index map.
type table struct {
	columns map[string]int
	rows    [][]string
}

// parseTable parses CSV bytes. Rows with a different field count than the
// header are kept; cell lookups on them simply fail, so the row counts as
// malformed instead of aborting the whole parse.
func parseTable(b []byte) (*table, error) {
	reader := csv.NewReader(bytes.NewReader(b))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}

	return &table{columns: columns, rows: rows}, nil
}

// cell returns the trimmed value of the named column in the given row.
func (t *table) cell(row []string, column string) (string, bool) {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

func (t *table) hasColumn(column string) bool {
	_, ok := t.columns[column]
	return ok
}
