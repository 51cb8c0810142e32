package models

import (
	"encoding/json"
	"testing"
)

func TestLabelUnmarshal(t *testing.T) {
	var l Label
	if err := json.Unmarshal([]byte(`"c17"`), &l); err != nil || l != "c17" {
		t.Fatalf("string label = %q, err %v", l, err)
	}
	if err := json.Unmarshal([]byte(`17`), &l); err != nil || l != "17" {
		t.Fatalf("int label = %q, err %v", l, err)
	}
	if err := json.Unmarshal([]byte(`16.5`), &l); err != nil || l != "16.5" {
		t.Fatalf("float label = %q, err %v", l, err)
	}
	if err := json.Unmarshal([]byte(`[1]`), &l); err == nil {
		t.Fatalf("array accepted as label")
	}
}

func TestAmperageBucket(t *testing.T) {
	cases := map[Label]string{
		"<18A":    "<18A",
		">=18A":   ">=18A",
		"12":      "<18A",
		"17.99":   "<18A",
		"18":      ">=18A",
		"35.5":    ">=18A",
		"":        ">=18A",
		"mystery": ">=18A",
	}
	for raw, want := range cases {
		if got := AmperageBucket(raw); got != want {
			t.Fatalf("bucket(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestGroupKeyIgnoresHourAndAmperage(t *testing.T) {
	a := Ping{BMSID: "b", Country: "IN", CentroidID: "c1", Hour: 1, Amperage: "<18A", SOCLost: 5, Date: "2024-05-01"}
	b := a
	b.Hour = 23
	b.Amperage = ">=18A"
	b.SOCLost = 0.5
	if a.GroupKey() != b.GroupKey() {
		t.Fatalf("hour/amperage/soc must not split groups")
	}
	c := a
	c.CentroidID = "c2"
	if a.GroupKey() == c.GroupKey() {
		t.Fatalf("different centroids share a group key")
	}
}

func TestStationDistanceCodec(t *testing.T) {
	var sd StationDistance
	if err := json.Unmarshal([]byte(`["StationA", 0.004]`), &sd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sd.Name != "StationA" || sd.Distance != 0.004 {
		t.Fatalf("decoded = %+v", sd)
	}

	out, err := json.Marshal(sd)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `["StationA",0.004]` {
		t.Fatalf("encoded = %s", out)
	}

	if err := json.Unmarshal([]byte(`["only-name"]`), &sd); err == nil {
		t.Fatalf("short pair accepted")
	}
	if err := json.Unmarshal([]byte(`{"name":"x"}`), &sd); err == nil {
		t.Fatalf("object accepted")
	}
}
