// Package dsa serves the static company to DSA question table.
package dsa

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaswanth-142004/EZ-Search/internal/schemas"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// DefaultPath is the table file looked up relative to the working directory.
const DefaultPath = "dsa.json"

// Table maps a lowercased company name to its DSA questions. It is read-only
// after Load.
type Table struct {
	companies map[string][]types.DSAQuestion
}

// Load reads and decodes the table file at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "read failed", Cause: err}
	}
	t, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Parse decodes table JSON. A company's records may be a list or an object
// keyed by index ({"0": {...}, "1": {...}}); the latter is turned into a list
// ordered by key.
func Parse(data []byte) (*Table, error) {
	if err := schemas.ValidateBytes(schemas.DSATable, data); err != nil {
		return nil, &LoadError{Path: "(bytes)", Message: "table does not match schema", Cause: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Path: "(bytes)", Message: "invalid JSON", Cause: err}
	}

	companies := make(map[string][]types.DSAQuestion, len(raw))
	for name, records := range raw {
		list, err := decodeRecords(records)
		if err != nil {
			return nil, &LoadError{Path: "(bytes)", Message: "invalid records for " + name, Cause: err}
		}
		companies[normalizeCompany(name)] = list
	}
	return &Table{companies: companies}, nil
}

// New builds a table from already decoded records.
func New(companies map[string][]types.DSAQuestion) *Table {
	t := &Table{companies: make(map[string][]types.DSAQuestion, len(companies))}
	for name, list := range companies {
		t.companies[normalizeCompany(name)] = list
	}
	return t
}

func decodeRecords(data json.RawMessage) ([]types.DSAQuestion, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []types.DSAQuestion
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var indexed map[string]types.DSAQuestion
	if err := json.Unmarshal(data, &indexed); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(indexed))
	for k := range indexed {
		keys = append(keys, k)
	}
	sortIndexKeys(keys)

	list := make([]types.DSAQuestion, 0, len(keys))
	for _, k := range keys {
		list = append(list, indexed[k])
	}
	return list, nil
}

// sortIndexKeys orders keys numerically when every key is an integer and
// lexically otherwise.
func sortIndexKeys(keys []string) {
	nums := make(map[string]int, len(keys))
	for _, k := range keys {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			sort.Strings(keys)
			return
		}
		nums[k] = n
	}
	sort.Slice(keys, func(i, j int) bool { return nums[keys[i]] < nums[keys[j]] })
}

func normalizeCompany(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns {company: records} for the lowercased, trimmed company name.
// A miss is a *NotFoundError.
func (t *Table) Lookup(company string) (map[string][]types.DSAQuestion, error) {
	key := normalizeCompany(company)
	records, ok := t.companies[key]
	if !ok || key == "" {
		return nil, &NotFoundError{Company: key}
	}
	return map[string][]types.DSAQuestion{key: records}, nil
}

// Companies returns the table's company names in sorted order.
func (t *Table) Companies() []string {
	names := make([]string, 0, len(t.companies))
	for name := range t.companies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of companies.
func (t *Table) Len() int {
	return len(t.companies)
}
