package io

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/yieldpath/pkg/network"
)

// Format names an encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists every supported format.
func Formats() []Format { return []Format{FormatText, FormatJSON, FormatTOML} }

// ParseFormat converts a user-supplied name. "txt" is accepted for text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// DetectFormat infers a format from a file extension. Anything that is not
// .json or .toml is treated as text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// Read decodes records from r in the given format.
func Read(r io.Reader, f Format) ([]network.Record, error) {
	switch f {
	case FormatText:
		return ReadText(r)
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Write encodes records to w in the given format.
func Write(w io.Writer, records []network.Record, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatTOML:
		return WriteTOML(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ReadFile opens path and decodes it using [DetectFormat].
func ReadFile(path string) ([]network.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := Read(f, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ExportFile writes records to path in the given format.
func ExportFile(path string, records []network.Record, f Format) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(out, records, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
