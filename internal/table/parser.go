package table

import (
	"fmt"
	"os"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"deriv-generator/internal/diagnostic"
)

// ParseFile reads and parses the table source at path.
func ParseFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table source %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse decodes every top-level array in src into the table model.
func Parse(src []byte) (*Model, error) {
	blocks, err := splitBlocks(clean(string(src)))
	if err != nil {
		return nil, err
	}

	m := &Model{byName: make(map[string]*MethodTable)}
	seen := make(map[string]int)

	for _, b := range blocks {
		name := b.name()
		if len(name) < minNameLen {
			m.Diagnostics.AddInfo(diagnostic.CodeSkippedBlock,
				fmt.Sprintf("ignoring brace block %q, not a table declaration", name), "", "", b.line)

			continue
		}

		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s declared on lines %d and %d", ErrDuplicateTable, name, prev, b.line)
		}

		seen[name] = b.line

		if name == DescriptionTableName {
			m.Descriptions, err = buildDescriptions(b.entries(), &m.Diagnostics)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}

			continue
		}

		t, diags, err := buildTable(name, b.line, b.entries())
		m.Diagnostics.Merge(diags)

		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		if t == nil {
			continue
		}

		log.Debugf("table %s: %d methods, first %s, flags %+v", t.Name, t.Len(), t.FirstMethod, t.Flags())

		m.Tables = append(m.Tables, t)
		m.byName[name] = t
	}

	return m, nil
}

// buildTable decodes one method table. Rows that cannot be decoded are
// reported as error diagnostics and skipped, so one pass finds all of them.
// A nil table with a nil error means every usable row was malformed.
func buildTable(name string, line int, raws []rawEntry) (*MethodTable, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	t := newMethodTable(name, line)
	seen := make(map[string]struct{})

	for _, raw := range raws {
		method := raw.fields[0]
		if method == "" {
			diags.AddError(diagnostic.CodeMalformedEntry, "entry has no method name", name, "", raw.line)
			continue
		}

		if IsExcluded(method) {
			diags.AddInfo(diagnostic.CodeExcludedMethod, "meta entry skipped", name, method, raw.line)
			continue
		}

		if t.FirstMethod == "" {
			t.FirstMethod = method
		}

		if len(raw.fields) < 1+SlotCount {
			diags.AddError(diagnostic.CodeMalformedEntry,
				fmt.Sprintf("entry has %d fields, want %d", len(raw.fields), 1+SlotCount), name, method, raw.line)

			continue
		}

		if _, dup := seen[method]; dup {
			return nil, diags, fmt.Errorf("%w: %s on line %d", ErrDuplicateMethod, method, raw.line)
		}

		seen[method] = struct{}{}

		e := Entry{Method: method}
		copy(e.Impls[:], raw.fields[1:1+SlotCount])

		if e.PrimarySlot() < 0 {
			diags.AddWarning(diagnostic.CodeDroppedMethod, "no slot is implemented", name, method, raw.line)
			continue
		}

		t.add(e)
	}

	if t.Len() == 0 {
		if diags.HasErrors() {
			return nil, diags, nil
		}

		return nil, diags, ErrEmptyTable
	}

	t.flags = deriveFlags(t.entries[0])

	return t, diags, nil
}

// buildDescriptions reads {method, "label", "description"} rows.
func buildDescriptions(raws []rawEntry, diags *diagnostic.Diagnostics) (*DescriptionTable, error) {
	d := &DescriptionTable{text: make(map[string]string)}

	for _, raw := range raws {
		method := raw.fields[0]
		if IsExcluded(method) {
			continue
		}

		if len(raw.fields) < 3 {
			diags.AddError(diagnostic.CodeMalformedEntry, "entry has no description", DescriptionTableName, method, raw.line)
			continue
		}

		if slices.Contains(d.order, method) {
			return nil, fmt.Errorf("%w: %s on line %d", ErrDuplicateMethod, method, raw.line)
		}

		d.order = append(d.order, method)
		d.text[method] = strings.Trim(raw.fields[2], `"`)
	}

	return d, nil
}
