package models

import (
	"database/sql"
	"encoding/json"
	"testing"
)

func TestLegLocationJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want LegLocation
	}{
		{"destination", `{"destination_id":7}`, Located(7)},
		{"address", `{"address":"Hauptstr. 12, Berlin"}`, Addressed("Hauptstr. 12, Berlin")},
		{"address trimmed", `{"address":"  Hauptstr. 12  "}`, Addressed("Hauptstr. 12")},
		{"null", `null`, LegLocation{}},
		{"empty object", `{}`, LegLocation{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l LegLocation
			if err := json.Unmarshal([]byte(tt.in), &l); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if l != tt.want {
				t.Fatalf("got %v, want %v", l, tt.want)
			}
		})
	}
}

func TestLegLocationRejectsBoth(t *testing.T) {
	var l LegLocation
	err := json.Unmarshal([]byte(`{"destination_id":3,"address":"somewhere"}`), &l)
	if err == nil {
		t.Fatal("expected error for destination_id and address together")
	}
}

func TestLegLocationMarshal(t *testing.T) {
	b, err := json.Marshal(Located(5))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"destination_id":5}` {
		t.Fatalf("got %s", b)
	}

	b, err = json.Marshal(LegLocation{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Fatalf("unset leg should marshal to null, got %s", b)
	}
}

func TestLegLocationRowRoundTrip(t *testing.T) {
	tests := []LegLocation{
		Located(42),
		Addressed("Bahnhofstr. 1"),
		{},
	}
	for _, l := range tests {
		id, addr := l.Row()
		if got := LegFromRow(id, addr); got != l {
			t.Fatalf("round trip of %v gave %v", l, got)
		}
	}
}

func TestLegFromRowPrefersDestination(t *testing.T) {
	// both columns set should never happen, but the destination wins
	got := LegFromRow(
		sql.NullInt64{Int64: 3, Valid: true},
		sql.NullString{String: "x", Valid: true},
	)
	if got != Located(3) {
		t.Fatalf("got %v", got)
	}
}
