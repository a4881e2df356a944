// SPDX-License-Identifier: MIT

package tableio

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/synthdata/table"
)

// Meta is the YAML sidecar of a table.
//
//	columns:
//	  sex:
//	    role: categorical
//	    labels: {"1": male, "2": female}
//	  income:
//	    format: "%9.2f"
type Meta struct {
	Columns map[string]ColumnMeta `yaml:"columns"`
}

// ColumnMeta is the metadata of one column. Label codes are written as
// strings so any numeric code survives YAML.
type ColumnMeta struct {
	Role   string            `yaml:"role,omitempty"`
	Format string            `yaml:"format,omitempty"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// LoadMeta reads a sidecar file.
func LoadMeta(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	return ReadMeta(f)
}

// ReadMeta decodes a sidecar.
func ReadMeta(r io.Reader) (*Meta, error) {
	m := &Meta{}
	if err := yaml.NewDecoder(r).Decode(m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	return m, nil
}

// MetaOf captures the labels, formats and roles of t.
func MetaOf(t *table.Table) *Meta {
	m := &Meta{Columns: make(map[string]ColumnMeta, t.NumCols())}
	for _, c := range t.Columns() {
		cm := ColumnMeta{Format: c.Format}
		if c.Role != table.RoleUnknown {
			cm.Role = c.Role.String()
		}
		if c.HasLabels() {
			cm.Labels = make(map[string]string, len(c.Labels))
			for code, text := range c.Labels {
				cm.Labels[table.FormatKey(code)] = text
			}
		}
		if cm.Role != "" || cm.Format != "" || cm.Labels != nil {
			m.Columns[c.Name] = cm
		}
	}

	return m
}

// Write encodes m as YAML.
func (m *Meta) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}

	return enc.Close()
}

// Save writes m to path.
func (m *Meta) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := m.Write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Apply attaches labels and formats to the columns of t. Roles are not
// stored on the columns; read them with Roles and pass them as overrides.
//
// Errors: ErrUnknownColumn, ErrBadLabel.
func (m *Meta) Apply(t *table.Table) error {
	for _, name := range m.names() {
		cm := m.Columns[name]
		c, ok := t.Column(name)
		if !ok {
			return fmt.Errorf("%q: %w", name, ErrUnknownColumn)
		}
		if cm.Format != "" {
			c.Format = cm.Format
		}
		if len(cm.Labels) == 0 {
			continue
		}
		labels := make(map[float64]string, len(cm.Labels))
		for code, text := range cm.Labels {
			v, err := strconv.ParseFloat(code, 64)
			if err != nil {
				return fmt.Errorf("%q label %q: %w", name, code, ErrBadLabel)
			}
			labels[v] = text
		}
		c.Labels = labels
	}

	return nil
}

// Roles parses the role hints.
func (m *Meta) Roles() (map[string]table.Role, error) {
	out := make(map[string]table.Role)
	for _, name := range m.names() {
		s := m.Columns[name].Role
		if s == "" {
			continue
		}
		r, err := table.ParseRole(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", name, err)
		}
		out[name] = r
	}

	return out, nil
}

func (m *Meta) names() []string {
	names := make([]string, 0, len(m.Columns))
	for name := range m.Columns {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
