package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/yieldpath/pkg/network"
)

type document struct {
	Locations []network.Record `json:"locations"`
}

// WriteJSON encodes records as {"locations": [...]} with two-space
// indentation. Nil neighbor lists are written as [] so the output is
// stable. The result can be re-read with [ReadJSON].
func WriteJSON(w io.Writer, records []network.Record) error {
	out := document{Locations: normalize(records)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func normalize(records []network.Record) []network.Record {
	out := make([]network.Record, len(records))
	for i, r := range records {
		if r.Neighbors == nil {
			r.Neighbors = []string{}
		}
		out[i] = r
	}
	return out
}
