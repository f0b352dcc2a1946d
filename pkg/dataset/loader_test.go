package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func asDatasetError(err error, target **Error) bool {
	return errors.As(err, target)
}

// writeTempCSV writes content to a temp file and returns its path
func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

const featureHeader = "views,mature,life_time,created_at,updated_at,numeric_id,dead_account,language,affiliate"

func featureCSV(rows ...string) string {
	out := featureHeader
	for _, r := range rows {
		out += "\n" + r
	}
	return out + "\n"
}

func TestLoadEdgeTable(t *testing.T) {
	path := writeTempCSV(t, "edges.csv", "numeric_id_1,numeric_id_2\n1,2\n1,3\n2,3\n2,2\n")

	table, err := LoadEdgeTable(path)
	if err != nil {
		t.Fatalf("LoadEdgeTable failed: %v", err)
	}

	if len(table.Edges) != 4 {
		t.Fatalf("expected 4 edge rows, got %d", len(table.Edges))
	}
	if table.Edges[0] != (EdgeRecord{A: 1, B: 2}) {
		t.Errorf("unexpected first edge: %+v", table.Edges[0])
	}
	if table.Edges[3] != (EdgeRecord{A: 2, B: 2}) {
		t.Errorf("self-loop row must survive loading: %+v", table.Edges[3])
	}
}

func TestLoadEdgeTable_MissingFile(t *testing.T) {
	_, err := LoadEdgeTable(filepath.Join(t.TempDir(), "nope.csv"))
	if !IsNotFound(err) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadEdgeTable_WrongColumnCount(t *testing.T) {
	path := writeTempCSV(t, "edges.csv", "a,b,c\n1,2,3\n")

	_, err := LoadEdgeTable(path)
	if !IsSchemaMismatch(err) {
		t.Errorf("expected ErrSchemaMismatch for 3 columns, got %v", err)
	}
}

func TestLoadEdgeTable_NonIntegerCell(t *testing.T) {
	path := writeTempCSV(t, "edges.csv", "a,b\n1,2\nx,3\n")

	_, err := LoadEdgeTable(path)
	if !IsSchemaMismatch(err) {
		t.Fatalf("expected ErrSchemaMismatch for non-integer cell, got %v", err)
	}

	var derr *Error
	if !asDatasetError(err, &derr) {
		t.Fatalf("expected a structured dataset error, got %T", err)
	}
	if derr.Row != 2 || derr.Column != "a" {
		t.Errorf("expected row 2 column a, got row %d column %s", derr.Row, derr.Column)
	}
}

func TestLoadEdgeTable_RaggedRow(t *testing.T) {
	path := writeTempCSV(t, "edges.csv", "a,b\n1,2\n3\n")

	_, err := LoadEdgeTable(path)
	if !IsSchemaMismatch(err) {
		t.Errorf("expected ErrSchemaMismatch for ragged row, got %v", err)
	}
}

func TestLoadEdgeTable_Empty(t *testing.T) {
	path := writeTempCSV(t, "edges.csv", "a,b\n")

	_, err := LoadEdgeTable(path)
	if !IsEmpty(err) {
		t.Errorf("expected ErrEmptyResult for header-only file, got %v", err)
	}
}

func TestLoadEdgeTable_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.csv.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create gz file: %v", err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write([]byte("a,b\n10,20\n20,30\n")); err != nil {
		t.Fatalf("failed to write gz content: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gz writer: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("failed to close gz file: %v", err)
	}

	table, err := LoadEdgeTable(path)
	if err != nil {
		t.Fatalf("LoadEdgeTable on .gz failed: %v", err)
	}
	if len(table.Edges) != 2 {
		t.Errorf("expected 2 edges from gz file, got %d", len(table.Edges))
	}
}

func TestLoadFeatureTable(t *testing.T) {
	path := writeTempCSV(t, "features.csv", featureCSV(
		"1000,1,600,2015-01-01,2018-03-04,1,0,EN,1",
		"250,0,1200,2012-06-15,2018-10-12,2,0,fr,0",
	))

	table, err := LoadFeatureTable(path)
	if err != nil {
		t.Fatalf("LoadFeatureTable failed: %v", err)
	}

	if len(table.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(table.Records))
	}

	first := table.Records[0]
	if first.ID != 1 || first.Views != 1000 || !first.Mature || first.LifeTime != 600 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Language != "EN" || !first.Affiliate || first.DeadAccount {
		t.Errorf("unexpected first record flags: %+v", first)
	}
	if first.CreatedAt.Format(DateLayout) != "2015-01-01" {
		t.Errorf("unexpected created_at: %v", first.CreatedAt)
	}

	// Language codes normalize to upper case
	if table.Records[1].Language != "FR" {
		t.Errorf("expected language FR, got %s", table.Records[1].Language)
	}
}

func TestLoadFeatureTable_MissingColumn(t *testing.T) {
	path := writeTempCSV(t, "features.csv",
		"views,mature,life_time,created_at,updated_at,numeric_id,dead_account,language\n"+
			"1000,1,600,2015-01-01,2018-03-04,1,0,EN\n")

	_, err := LoadFeatureTable(path)
	if !IsSchemaMismatch(err) {
		t.Fatalf("expected ErrSchemaMismatch for missing column, got %v", err)
	}

	var derr *Error
	if asDatasetError(err, &derr) && derr.Column != ColAffiliate {
		t.Errorf("expected the affiliate column to be reported, got %s", derr.Column)
	}
}

func TestLoadFeatureTable_BadDate(t *testing.T) {
	path := writeTempCSV(t, "features.csv", featureCSV(
		"1000,1,600,01/01/2015,2018-03-04,1,0,EN,1",
	))

	_, err := LoadFeatureTable(path)
	if !IsSchemaMismatch(err) {
		t.Errorf("expected ErrSchemaMismatch for bad date, got %v", err)
	}
}

func TestLoadFeatureTable_BadFlag(t *testing.T) {
	path := writeTempCSV(t, "features.csv", featureCSV(
		"1000,2,600,2015-01-01,2018-03-04,1,0,EN,1",
	))

	_, err := LoadFeatureTable(path)
	if !IsSchemaMismatch(err) {
		t.Errorf("expected ErrSchemaMismatch for mature=2, got %v", err)
	}
}

func TestLoadFeatureTable_ColumnOrderIrrelevant(t *testing.T) {
	path := writeTempCSV(t, "features.csv",
		"numeric_id,language,views,mature,life_time,created_at,updated_at,dead_account,affiliate\n"+
			"7,DE,50,0,30,2019-05-05,2019-06-06,1,0\n")

	table, err := LoadFeatureTable(path)
	if err != nil {
		t.Fatalf("LoadFeatureTable failed: %v", err)
	}
	rec := table.Records[0]
	if rec.ID != 7 || rec.Language != "DE" || rec.Views != 50 || !rec.DeadAccount {
		t.Errorf("columns mis-mapped when reordered: %+v", rec)
	}
}
