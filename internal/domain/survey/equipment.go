package survey

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultEquipmentFallbackMonths applies when no interval table matches.
const DefaultEquipmentFallbackMonths = 12

// IntervalSource names the table entry that supplied an equipment interval.
type IntervalSource string

const (
	SourceShipExact        IntervalSource = "ship_exact"
	SourceShipSubstring    IntervalSource = "ship_substring"
	SourceDefaultExact     IntervalSource = "default_exact"
	SourceDefaultSubstring IntervalSource = "default_substring"
	SourceFallback         IntervalSource = "fallback"
)

// NormalizeEquipmentName folds an equipment name for table lookup: Unicode
// NFKC, surrounding whitespace trimmed, inner runs of whitespace collapsed,
// lower-cased.
func NormalizeEquipmentName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(norm.NFKC.String(s)), " "))
}

// IntervalTable is an immutable lookup table, normalized name → months.
type IntervalTable struct {
	entries map[string]int
	// keys in substring-probe order: longest first, then lexicographic
	keys []string
}

// NewIntervalTable copies and normalizes m.  Entries with an empty name or a
// non-positive interval are dropped.  When two names normalize to the same
// key, the one whose original spelling sorts first wins.
func NewIntervalTable(m map[string]int) IntervalTable {
	originals := make([]string, 0, len(m))
	for k := range m {
		originals = append(originals, k)
	}
	sort.Strings(originals)

	t := IntervalTable{entries: make(map[string]int, len(m))}
	for _, orig := range originals {
		months := m[orig]
		key := NormalizeEquipmentName(orig)
		if key == "" || months < 1 {
			continue
		}
		if _, dup := t.entries[key]; dup {
			continue
		}
		t.entries[key] = months
		t.keys = append(t.keys, key)
	}
	sort.Slice(t.keys, func(i, j int) bool {
		if len(t.keys[i]) != len(t.keys[j]) {
			return len(t.keys[i]) > len(t.keys[j])
		}
		return t.keys[i] < t.keys[j]
	})
	return t
}

// Len reports the number of usable entries.
func (t IntervalTable) Len() int { return len(t.entries) }

func (t IntervalTable) exact(name string) (int, bool) {
	months, ok := t.entries[name]
	return months, ok
}

func (t IntervalTable) substring(name string) (string, int, bool) {
	if name == "" {
		return "", 0, false
	}
	for _, key := range t.keys {
		if strings.Contains(name, key) || strings.Contains(key, name) {
			return key, t.entries[key], true
		}
	}
	return "", 0, false
}

// EquipmentValidity is the EquipmentValidityCalculator output.
type EquipmentValidity struct {
	EquipmentName  string         `json:"equipment_name"`
	NormalizedName string         `json:"normalized_name"`
	Issued         time.Time      `json:"issued"`
	IntervalMonths int            `json:"interval_months"`
	DueDate        time.Time      `json:"due_date"`
	Source         IntervalSource `json:"source"`
	MatchedKey     string         `json:"matched_key,omitempty"`
}

// ResolveInterval picks the maintenance interval for name.  First match wins:
// ship exact, ship substring, default exact, default substring, fallback.
func ResolveInterval(name string, ship, defaults IntervalTable, fallbackMonths int) (int, IntervalSource, string) {
	if fallbackMonths <= 0 {
		fallbackMonths = DefaultEquipmentFallbackMonths
	}
	key := NormalizeEquipmentName(name)
	if months, ok := ship.exact(key); ok {
		return months, SourceShipExact, key
	}
	if k, months, ok := ship.substring(key); ok {
		return months, SourceShipSubstring, k
	}
	if months, ok := defaults.exact(key); ok {
		return months, SourceDefaultExact, key
	}
	if k, months, ok := defaults.substring(key); ok {
		return months, SourceDefaultSubstring, k
	}
	return fallbackMonths, SourceFallback, ""
}

// CalculateEquipmentValidity returns issued + the resolved interval.
func CalculateEquipmentValidity(name string, issued time.Time, ship, defaults IntervalTable, fallbackMonths int) EquipmentValidity {
	months, source, key := ResolveInterval(name, ship, defaults, fallbackMonths)
	issued = Civil(issued)
	return EquipmentValidity{
		EquipmentName:  name,
		NormalizedName: NormalizeEquipmentName(name),
		Issued:         issued,
		IntervalMonths: months,
		DueDate:        AddMonths(issued, months),
		Source:         source,
		MatchedKey:     key,
	}
}

//Personal.AI order the ending
