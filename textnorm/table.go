package textnorm

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	apperrors "github.com/kbukum/speechprep/errors"
)

//go:embed tables/fr.yaml
var frenchTable []byte

// Rule replaces every occurrence of From with To.
type Rule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Table holds the ordered rewriting rules of one locale.
type Table struct {
	Locale string `yaml:"locale"`
	// Specials rewrite separators and symbols before numerals are spelled.
	Specials []Rule `yaml:"specials"`
	// Anglicisms rewrite fixed tokens such as "B2B".
	Anglicisms []Rule `yaml:"anglicisms"`
	// Reject lists substrings that disqualify a label outright.
	Reject []string `yaml:"reject"`
	// Replacements fold diacritics, symbols and foreign letters.
	Replacements []Rule `yaml:"replacements"`
	// Drop lists strings removed once whitespace has been collapsed.
	Drop []string `yaml:"drop"`
}

// ParseTable decodes a YAML table. Unknown keys are rejected so a
// misspelled section does not silently disable its rules.
func ParseTable(data []byte) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, apperrors.InvalidInput("normalization_table", err.Error()).WithCause(err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTable reads a YAML table from path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.InvalidInput("normalization_table", fmt.Sprintf("cannot read %s", path)).WithCause(err)
	}
	return ParseTable(data)
}

// Validate checks that every rule has something to match.
func (t *Table) Validate() error {
	sections := []struct {
		name  string
		rules []Rule
	}{
		{"specials", t.Specials},
		{"anglicisms", t.Anglicisms},
		{"replacements", t.Replacements},
	}
	for _, s := range sections {
		for i, r := range s.rules {
			if r.From == "" {
				return apperrors.InvalidInput("normalization_table",
					fmt.Sprintf("%s[%d] has an empty 'from'", s.name, i))
			}
		}
	}
	for i, r := range t.Reject {
		if r == "" {
			return apperrors.InvalidInput("normalization_table", fmt.Sprintf("reject[%d] is empty", i))
		}
	}
	for i, d := range t.Drop {
		if d == "" {
			return apperrors.InvalidInput("normalization_table", fmt.Sprintf("drop[%d] is empty", i))
		}
	}
	return nil
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// FrenchTable returns the built-in French table. Callers must not modify it.
func FrenchTable() *Table {
	defaultOnce.Do(func() {
		t, err := ParseTable(frenchTable)
		if err != nil {
			panic(fmt.Sprintf("textnorm: embedded table is invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

func apply(s string, rules []Rule) string {
	for _, r := range rules {
		s = strings.ReplaceAll(s, r.From, r.To)
	}
	return s
}
