// Package daqcfg parses the textual process-file and mapping-file formats of
// spec.md §6 and wires them into a daq.Model's processor chain.
package daqcfg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Mapping is the whitespace-separated detector->component table of spec.md §6
// "Mapping file": a header naming each component column, then one row per detector id
// in ascending order giving that detector's index in each component.
type Mapping struct {
	Columns []string
	Rows    [][]int // Rows[detID][colIdx]
}

// Lookup returns a ComponentOf/BlockCoord-compatible accessor for the named column.
func (m *Mapping) Lookup(column string) (func(detID int) int, error) {
	idx := -1
	for i, c := range m.Columns {
		if c == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("daqcfg: unknown mapping column %q", column)
	}
	return func(detID int) int {
		if detID < 0 || detID >= len(m.Rows) {
			return -1
		}
		return m.Rows[detID][idx]
	}, nil
}

// DetIDs returns every detector id present in the table, in ascending order.
func (m *Mapping) DetIDs() []int {
	ids := make([]int, len(m.Rows))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// LoadMapping reads the whitespace-separated table format: first non-blank line is the
// header, each subsequent row is one detector's component indices.
func LoadMapping(r io.Reader) (*Mapping, error) {
	scanner := bufio.NewScanner(r)
	m := &Mapping{}
	headerSeen := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if !headerSeen {
			m.Columns = fields
			headerSeen = true
			continue
		}
		if len(fields) != len(m.Columns) {
			return nil, fmt.Errorf("daqcfg: mapping line %d has %d fields, want %d", lineNo, len(fields), len(m.Columns))
		}
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("daqcfg: mapping line %d field %d: %w", lineNo, i, err)
			}
			row[i] = v
		}
		m.Rows = append(m.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteMapping writes the same format LoadMapping reads, so that
// LoadMapping(WriteMapping(m)) reproduces m, per spec.md §8 property 8.
func WriteMapping(w io.Writer, m *Mapping) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, strings.Join(m.Columns, " ")); err != nil {
		return err
	}
	for _, row := range m.Rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = strconv.Itoa(v)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
