package testsupport

import (
	"encoding/csv"
	"os"
	"testing"
)

// ReadCSV parses the CSV file at path, failing the test on any error.
func ReadCSV(t testing.TB, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv %s: %v", path, err)
	}
	return rows
}
