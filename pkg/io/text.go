package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/yieldpath/pkg/network"
)

// ErrMalformedLine is returned by [ReadText] for a line that does not match
// the puzzle grammar.
var ErrMalformedLine = errors.New("malformed line")

var lineRe = regexp.MustCompile(
	`^Valve\s+(\S+)\s+has\s+flow\s+rate=(-?\d+);\s+tunnels?\s+leads?\s+to\s+valves?(?:\s+(.*))?$`)

// ReadText parses the puzzle text format. Blank lines and lines starting
// with '#' are skipped. A negative rate parses fine and is rejected later
// by network.Build.
func ReadText(r io.Reader) ([]network.Record, error) {
	records := []network.Record{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrMalformedLine, line)
		}
		rate, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: rate %q", lineNo, ErrMalformedLine, m[2])
		}
		rec := network.Record{ID: m[1], Rate: rate, Neighbors: []string{}}
		for _, n := range strings.Split(m[3], ",") {
			if n = strings.TrimSpace(n); n != "" {
				rec.Neighbors = append(rec.Neighbors, n)
			}
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return records, nil
}

// WriteText emits records in the puzzle text format.
func WriteText(w io.Writer, records []network.Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		fmt.Fprintf(bw, "Valve %s has flow rate=%d; ", r.ID, r.Rate)
		switch len(r.Neighbors) {
		case 0:
			bw.WriteString("tunnels lead to valves\n")
		case 1:
			fmt.Fprintf(bw, "tunnel leads to valve %s\n", r.Neighbors[0])
		default:
			fmt.Fprintf(bw, "tunnels lead to valves %s\n", strings.Join(r.Neighbors, ", "))
		}
	}
	return bw.Flush()
}
