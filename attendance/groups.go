package attendance

import (
	"encoding/csv"
	"fmt"
	"io"
)

type Group struct {
	Name string
	Icon string
}

var DefaultGroups = []Group{
	{"Csiga", "🐌"},
	{"Suni", "🦔"},
	{"Katica", "🐞"},
	{"Katica halado", "🐞"},
	{"Pillango", "🦋"},
	{"Nyuszi", "🐇"},
	{"Baglyok", "🦉"},
	{"Sas", "🦅"},
}

func Icon(groups []Group, name string) string {
	for _, g := range groups {
		if g.Name == name {
			return g.Icon
		}
	}

	return ""
}

// LoadGroups reads a group list from a TSV file with 'Group' and 'Icon' columns.
func LoadGroups(f io.Reader) ([]Group, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty groups file")
	}

	// .. build index
	index := map[string]int{}
	for i, v := range records[0] {
		k := normalise(v)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%s'", v)
		}

		index[k] = i
	}

	name, ok := index["group"]
	if !ok {
		return nil, fmt.Errorf("missing 'group' column")
	}

	icon, ok := index["icon"]
	if !ok {
		return nil, fmt.Errorf("missing 'icon' column")
	}

	// ... records
	groups := []Group{}
	for _, record := range records[1:] {
		if name >= len(record) || clean(record[name]) == "" {
			continue
		}

		g := Group{Name: clean(record[name])}
		if icon < len(record) {
			g.Icon = clean(record[icon])
		}

		groups = append(groups, g)
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("no groups defined")
	}

	return groups, nil
}
