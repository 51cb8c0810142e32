package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AmperageBucketThreshold splits numeric amperage readings into the two
// buckets the dashboard charts use.
const AmperageBucketThreshold = 18.0

// Label is a string-valued field that some exporters emit as a JSON number
// (centroid ids, amperage readings). It unmarshals either form.
type Label string

// UnmarshalJSON accepts a JSON string or number.
func (l *Label) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty label value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label must be a string or number: %w", err)
	}
	*l = Label(n.String())
	return nil
}

func (l Label) String() string { return string(l) }

// AmperageBucket normalizes an amperage value to one of the two chart
// buckets. Pre-bucketed labels pass through unchanged; numeric readings
// are binned at the threshold.
func AmperageBucket(raw Label) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return ">=18A"
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < AmperageBucketThreshold {
			return "<18A"
		}
		return ">=18A"
	}
	if s == "<18A" {
		return "<18A"
	}
	return ">=18A"
}

// Ping is one telemetry observation of SOC loss at a centroid.
//
// Date is not part of the wire format of the pings array; it is injected
// from the owning snapshot at load time so that merged records stay
// attributable once snapshots from several days are mixed in one table.
type Ping struct {
	BMSID         string  `json:"bms_id"`
	Country       string  `json:"country"`
	CentroidID    Label   `json:"centroid_id"`
	Hour          int     `json:"hour"`
	Amperage      Label   `json:"amperage"`
	SOCLost       float64 `json:"soc_lost"`
	LastMapped    string  `json:"last_mapped"`
	LastSwapTime  string  `json:"last_swap_time"`
	LastSwapState string  `json:"last_swap_state"`
	Date          string  `json:"date,omitempty"`
}

// GroupKey serializes every field except hour, amperage and soc_lost.
// Two pings with the same group key describe the same underlying swap
// event split across sub-measurements and must be merged.
func (p Ping) GroupKey() string {
	return strings.Join([]string{
		p.BMSID,
		p.Country,
		string(p.CentroidID),
		p.LastMapped,
		p.LastSwapTime,
		p.LastSwapState,
		p.Date,
	}, "\x1f")
}
