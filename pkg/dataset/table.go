package dataset

import (
	"time"
)

// Table holds one loaded delimited file as raw cells, header excluded.
// The raw form is what the validator inspects; typed views are built on top.
type Table struct {
	File    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// EdgeRecord is one undirected friendship pair.
type EdgeRecord struct {
	A uint64
	B uint64
}

// EdgeTable is the raw edge file plus its typed rows.
type EdgeTable struct {
	Table
	Edges []EdgeRecord
}

// FeatureRecord holds the per-streamer attribute row, keyed by node id.
// Loaded once and never mutated afterwards.
type FeatureRecord struct {
	ID          uint64
	Views       uint64
	Mature      bool
	LifeTime    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeadAccount bool
	Language    string
	Affiliate   bool
}

// Clone returns an independent copy of the record.
func (r *FeatureRecord) Clone() *FeatureRecord {
	clone := *r
	return &clone
}

// FeatureTable is the raw feature file plus its typed rows.
type FeatureTable struct {
	Table
	Records []FeatureRecord
}

// Feature file column names, matched by header rather than position.
const (
	ColNodeID      = "numeric_id"
	ColViews       = "views"
	ColMature      = "mature"
	ColLifeTime    = "life_time"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
	ColDeadAccount = "dead_account"
	ColLanguage    = "language"
	ColAffiliate   = "affiliate"
)

// featureColumns lists every column the feature file must carry.
var featureColumns = []string{
	ColNodeID, ColViews, ColMature, ColLifeTime, ColCreatedAt,
	ColUpdatedAt, ColDeadAccount, ColLanguage, ColAffiliate,
}

// DateLayout is the calendar format used by created_at / updated_at.
const DateLayout = "2006-01-02"
