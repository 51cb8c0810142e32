package models

// Pivot dimension names accepted by the grouping engine and the split
// selector. These match the table column fields the dashboard exposes.
const (
	DimBMS          = "bms"
	DimCountry      = "country"
	DimCentroidID   = "centroid_id"
	DimCentroidName = "centroid_name"
	DimCentroidType = "centroid_type"
	DimLastMapped   = "last_mapped"
	DimAmperage     = "amperage"
	DimDate         = "date"

	// SplitNone collapses a selection to a single default-keyed series.
	SplitNone = "none"
)

// PivotRow is one table row: a merged ping joined with its centroid's
// classification for the owning date. SortKeys carries the propagated
// per-depth aggregate keys; slot i holds the encoded subtree sum of the
// row's ancestor group at depth i+1.
type PivotRow struct {
	BMS          string   `json:"bms"`
	Country      string   `json:"country"`
	CentroidID   string   `json:"centroid_id"`
	CentroidName string   `json:"centroid_name"`
	CentroidType string   `json:"centroid_type"`
	LastMapped   string   `json:"last_mapped"`
	Amperage     string   `json:"amperage"`
	SOCLost      float64  `json:"soc_lost"`
	Date         string   `json:"date"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	SortKeys     []string `json:"sort_keys"`
}

// Field returns the row's value for a pivot dimension. The second result
// reports whether the dimension name is known at all; grouping treats
// unknown dimensions as a no-op rather than failing the render.
func (r *PivotRow) Field(dim string) (string, bool) {
	switch dim {
	case DimBMS:
		return r.BMS, true
	case DimCountry:
		return r.Country, true
	case DimCentroidID:
		return r.CentroidID, true
	case DimCentroidName:
		return r.CentroidName, true
	case DimCentroidType:
		return r.CentroidType, true
	case DimLastMapped:
		return r.LastMapped, true
	case DimAmperage:
		return r.Amperage, true
	case DimDate:
		return r.Date, true
	}
	return "", false
}

// KnownDimension reports whether dim is a groupable field name.
func KnownDimension(dim string) bool {
	var r PivotRow
	_, ok := r.Field(dim)
	return ok
}
