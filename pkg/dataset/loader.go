package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// openInput opens a delimited file, decompressing transparently when the
// path carries a .gz suffix.
func openInput(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError(path, err)
		}
		return nil, loadError(path, err)
	}

	if !strings.HasSuffix(path, ".gz") {
		return file, nil
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, loadError(path, err)
	}
	return &gzipReadCloser{gz: gz, file: file}, nil
}

type gzipReadCloser struct {
	gz   *gzip.Reader
	file *os.File
}

func (r *gzipReadCloser) Read(p []byte) (int, error) { return r.gz.Read(p) }

func (r *gzipReadCloser) Close() error {
	gzErr := r.gz.Close()
	fileErr := r.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// loadTable reads a whole CSV file into a raw Table. Every row must carry
// the same field count as the header; csv.Reader enforces that for us.
func loadTable(path string) (*Table, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, emptyError(path)
		}
		return nil, loadError(path, err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	table := &Table{File: path, Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
				return nil, schemaError(path, len(table.Rows)+1, "", err)
			}
			return nil, loadError(path, err)
		}
		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = strings.TrimSpace(cell)
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, emptyError(path)
	}
	return table, nil
}

// LoadEdgeTable reads the edge file: a header plus exactly two integer
// columns, one row per undirected friendship pair.
func LoadEdgeTable(path string) (*EdgeTable, error) {
	table, err := loadTable(path)
	if err != nil {
		return nil, err
	}

	if len(table.Columns) != 2 {
		return nil, schemaError(path, 0, "",
			fmt.Errorf("expected 2 columns, got %d", len(table.Columns)))
	}

	edges := make([]EdgeRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		a, err := strconv.ParseUint(row[0], 10, 64)
		if err != nil {
			return nil, schemaError(path, i+1, table.Columns[0],
				fmt.Errorf("not an unsigned integer: %q", row[0]))
		}
		b, err := strconv.ParseUint(row[1], 10, 64)
		if err != nil {
			return nil, schemaError(path, i+1, table.Columns[1],
				fmt.Errorf("not an unsigned integer: %q", row[1]))
		}
		edges = append(edges, EdgeRecord{A: a, B: b})
	}

	return &EdgeTable{Table: *table, Edges: edges}, nil
}

// LoadFeatureTable reads the per-node attribute file. Columns are resolved
// by header name, so column order in the source file does not matter.
func LoadFeatureTable(path string) (*FeatureTable, error) {
	table, err := loadTable(path)
	if err != nil {
		return nil, err
	}

	colIndex := make(map[string]int, len(table.Columns))
	for i, col := range table.Columns {
		colIndex[col] = i
	}
	for _, required := range featureColumns {
		if _, ok := colIndex[required]; !ok {
			return nil, schemaError(path, 0, required, fmt.Errorf("column missing"))
		}
	}

	records := make([]FeatureRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		rec, err := parseFeatureRow(path, i+1, row, colIndex)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return &FeatureTable{Table: *table, Records: records}, nil
}

func parseFeatureRow(path string, rowNum int, row []string, colIndex map[string]int) (FeatureRecord, error) {
	var rec FeatureRecord
	var err error

	if rec.ID, err = parseUintCell(row, colIndex, ColNodeID); err != nil {
		return rec, schemaError(path, rowNum, ColNodeID, err)
	}
	if rec.Views, err = parseUintCell(row, colIndex, ColViews); err != nil {
		return rec, schemaError(path, rowNum, ColViews, err)
	}
	if rec.Mature, err = parseBoolCell(row, colIndex, ColMature); err != nil {
		return rec, schemaError(path, rowNum, ColMature, err)
	}
	if rec.LifeTime, err = parseIntCell(row, colIndex, ColLifeTime); err != nil {
		return rec, schemaError(path, rowNum, ColLifeTime, err)
	}
	if rec.CreatedAt, err = parseDateCell(row, colIndex, ColCreatedAt); err != nil {
		return rec, schemaError(path, rowNum, ColCreatedAt, err)
	}
	if rec.UpdatedAt, err = parseDateCell(row, colIndex, ColUpdatedAt); err != nil {
		return rec, schemaError(path, rowNum, ColUpdatedAt, err)
	}
	if rec.DeadAccount, err = parseBoolCell(row, colIndex, ColDeadAccount); err != nil {
		return rec, schemaError(path, rowNum, ColDeadAccount, err)
	}
	if rec.Affiliate, err = parseBoolCell(row, colIndex, ColAffiliate); err != nil {
		return rec, schemaError(path, rowNum, ColAffiliate, err)
	}

	rec.Language = strings.ToUpper(row[colIndex[ColLanguage]])
	if rec.Language == "" {
		return rec, schemaError(path, rowNum, ColLanguage, fmt.Errorf("empty language code"))
	}

	return rec, nil
}

func parseUintCell(row []string, colIndex map[string]int, col string) (uint64, error) {
	v, err := strconv.ParseUint(row[colIndex[col]], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an unsigned integer: %q", row[colIndex[col]])
	}
	return v, nil
}

func parseIntCell(row []string, colIndex map[string]int, col string) (int64, error) {
	v, err := strconv.ParseInt(row[colIndex[col]], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", row[colIndex[col]])
	}
	return v, nil
}

// parseBoolCell accepts the dataset's 0/1 encoding plus spelled-out booleans.
func parseBoolCell(row []string, colIndex map[string]int, col string) (bool, error) {
	switch strings.ToLower(row[colIndex[col]]) {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, fmt.Errorf("not a boolean flag: %q", row[colIndex[col]])
	}
}

func parseDateCell(row []string, colIndex map[string]int, col string) (time.Time, error) {
	t, err := time.Parse(DateLayout, row[colIndex[col]])
	if err != nil {
		return time.Time{}, fmt.Errorf("not a %s date: %q", DateLayout, row[colIndex[col]])
	}
	return t, nil
}
