// Package rules loads the numbered deletion-rule table used by the
// moderated removal command.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
)

// Rule pairs a small integer rule number with its human-readable
// violation text.
type Rule struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type rulesFile struct {
	Rules []Rule `json:"rules"`
}

// Table is a read-only mapping from rule number to violation text,
// built once at startup.
type Table struct {
	byNumber map[int]string
}

// Load reads and parses the rule file. The file must exist: a missing
// or malformed rule file aborts startup.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	var parsed rulesFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}

	byNumber := make(map[int]string, len(parsed.Rules))
	for _, rule := range parsed.Rules {
		if _, exists := byNumber[rule.Number]; exists {
			return nil, fmt.Errorf("duplicate rule number %d in %s", rule.Number, path)
		}
		byNumber[rule.Number] = rule.Text
	}

	return &Table{byNumber: byNumber}, nil
}

// NewTable builds a table directly from rules, for tests and callers
// that already hold the parsed list.
func NewTable(ruleList []Rule) (*Table, error) {
	byNumber := make(map[int]string, len(ruleList))
	for _, rule := range ruleList {
		if _, exists := byNumber[rule.Number]; exists {
			return nil, fmt.Errorf("duplicate rule number %d", rule.Number)
		}
		byNumber[rule.Number] = rule.Text
	}
	return &Table{byNumber: byNumber}, nil
}

// Lookup returns the violation text for a rule number.
func (t *Table) Lookup(number int) (string, bool) {
	text, ok := t.byNumber[number]
	return text, ok
}

// Len reports how many rules are loaded.
func (t *Table) Len() int {
	return len(t.byNumber)
}
