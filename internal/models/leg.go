package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// LegLocation is where one leg of a trip happens: either a reference to a
// registered destination or a free-text address, never both, never neither.
// The zero value means "leg not set" and is only legal for optional legs.
type LegLocation struct {
	destinationID int64
	address       string
}

// Located builds a leg location referencing a destination by id.
func Located(destinationID int64) LegLocation {
	return LegLocation{destinationID: destinationID}
}

// Addressed builds a leg location from a free-text address.
func Addressed(text string) LegLocation {
	return LegLocation{address: strings.TrimSpace(text)}
}

// DestinationID returns the referenced destination id, if any.
func (l LegLocation) DestinationID() (int64, bool) {
	return l.destinationID, l.destinationID > 0
}

// Address returns the free-text address, if any.
func (l LegLocation) Address() (string, bool) {
	return l.address, l.address != ""
}

// IsZero reports whether the leg is unset.
func (l LegLocation) IsZero() bool {
	return l.destinationID == 0 && l.address == ""
}

func (l LegLocation) String() string {
	if l.destinationID > 0 {
		return fmt.Sprintf("destination:%d", l.destinationID)
	}
	return l.address
}

type legJSON struct {
	DestinationID *int64 `json:"destination_id,omitempty"`
	Address       string `json:"address,omitempty"`
}

// MarshalJSON emits {"destination_id":N} or {"address":"..."}; an unset
// leg marshals to null.
func (l LegLocation) MarshalJSON() ([]byte, error) {
	if l.IsZero() {
		return []byte("null"), nil
	}
	var v legJSON
	if l.destinationID > 0 {
		id := l.destinationID
		v.DestinationID = &id
	} else {
		v.Address = l.address
	}
	return json.Marshal(v)
}

// UnmarshalJSON enforces the destination-id XOR address rule. null and {}
// both decode to the zero (unset) leg.
func (l *LegLocation) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = LegLocation{}
		return nil
	}
	var v legJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	hasID := v.DestinationID != nil && *v.DestinationID > 0
	addr := strings.TrimSpace(v.Address)
	if hasID && addr != "" {
		return fmt.Errorf("leg location: destination_id and address are mutually exclusive")
	}
	if hasID {
		*l = LegLocation{destinationID: *v.DestinationID}
		return nil
	}
	*l = LegLocation{address: addr}
	return nil
}

// LegFromRow rebuilds a leg from its two nullable database columns.
func LegFromRow(destinationID sql.NullInt64, address sql.NullString) LegLocation {
	if destinationID.Valid && destinationID.Int64 > 0 {
		return LegLocation{destinationID: destinationID.Int64}
	}
	if address.Valid {
		return LegLocation{address: strings.TrimSpace(address.String)}
	}
	return LegLocation{}
}

// Row splits a leg back into its two nullable database columns.
func (l LegLocation) Row() (sql.NullInt64, sql.NullString) {
	if l.destinationID > 0 {
		return sql.NullInt64{Int64: l.destinationID, Valid: true}, sql.NullString{}
	}
	if l.address != "" {
		return sql.NullInt64{}, sql.NullString{String: l.address, Valid: true}
	}
	return sql.NullInt64{}, sql.NullString{}
}
