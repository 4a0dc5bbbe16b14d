package io

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/yieldpath/pkg/network"
)

// ErrMalformedJSON is returned by [ReadJSON] for syntactically invalid
// input or values of the wrong type.
var ErrMalformedJSON = errors.New("malformed JSON")

// ReadJSON decodes records from r.
//
// The input is either {"locations": [...]} or a bare array. Each element
// needs a string "id"; "rate" defaults to 0 and must be a whole number;
// "neighbors" defaults to empty and must hold strings. Unknown keys are
// ignored, so annotated exports from other tools load as-is.
func ReadJSON(r io.Reader) ([]network.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid syntax", ErrMalformedJSON)
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("locations")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: expected a \"locations\" array", ErrMalformedJSON)
	}

	records := []network.Record{}
	var decodeErr error
	list.ForEach(func(_, v gjson.Result) bool {
		rec, err := decodeLocation(v)
		if err != nil {
			decodeErr = fmt.Errorf("%w: location %d: %s", ErrMalformedJSON, len(records), err)
			return false
		}
		records = append(records, rec)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return records, nil
}

func decodeLocation(v gjson.Result) (network.Record, error) {
	if !v.IsObject() {
		return network.Record{}, fmt.Errorf("expected object, got %s", v.Type)
	}
	id := v.Get("id")
	if id.Type != gjson.String {
		return network.Record{}, fmt.Errorf("\"id\" must be a string")
	}
	rec := network.Record{ID: id.String(), Neighbors: []string{}}

	if rate := v.Get("rate"); rate.Exists() {
		if rate.Type != gjson.Number || rate.Num != math.Trunc(rate.Num) {
			return network.Record{}, fmt.Errorf("%s: \"rate\" must be an integer", rec.ID)
		}
		if rate.Num >= math.MaxInt64 || rate.Num < math.MinInt64 {
			return network.Record{}, fmt.Errorf("%s: \"rate\" out of range (%s)", rec.ID, rate.Raw)
		}
		rec.Rate = int(rate.Int())
	}

	if ns := v.Get("neighbors"); ns.Exists() {
		if !ns.IsArray() {
			return network.Record{}, fmt.Errorf("%s: \"neighbors\" must be an array", rec.ID)
		}
		var bad bool
		ns.ForEach(func(_, n gjson.Result) bool {
			if n.Type != gjson.String {
				bad = true
				return false
			}
			rec.Neighbors = append(rec.Neighbors, n.String())
			return true
		})
		if bad {
			return network.Record{}, fmt.Errorf("%s: \"neighbors\" must hold strings", rec.ID)
		}
	}
	return rec, nil
}
