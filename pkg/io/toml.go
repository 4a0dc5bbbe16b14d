package io

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/yieldpath/pkg/network"
)

// ErrMalformedTOML is returned by [ReadTOML] for invalid TOML.
var ErrMalformedTOML = errors.New("malformed TOML")

type tomlDocument struct {
	Location []network.Record `toml:"location"`
}

// ReadTOML decodes [[location]] tables from r. Keys other than id, rate
// and neighbors are rejected to catch typos such as "neighbours".
func ReadTOML(r io.Reader) ([]network.Record, error) {
	var doc tomlDocument
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTOML, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrMalformedTOML, undecoded[0])
	}
	for i := range doc.Location {
		if doc.Location[i].Neighbors == nil {
			doc.Location[i].Neighbors = []string{}
		}
	}
	if doc.Location == nil {
		doc.Location = []network.Record{}
	}
	return doc.Location, nil
}

// WriteTOML encodes records as [[location]] tables.
func WriteTOML(w io.Writer, records []network.Record) error {
	if err := toml.NewEncoder(w).Encode(tomlDocument{Location: normalize(records)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
