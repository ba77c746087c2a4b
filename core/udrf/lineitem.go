package udrf

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
)

const (
	lineItemsVersion = 1

	// amounts below lakhThreshold are taken to be in lakhs
	lakhThreshold = 1000.0
	lakh          = 100000.0
)

// Line item type tags.
const (
	TagGovtSponsored    = "Govt-Sponsored"
	TagNonGovtSponsored = "Non-Govt-Sponsored"
	TagConsultancy      = "Consultancy"
	TagTraining         = "Corporate-Training"
	TagMOOCDeveloped    = "Developed"
	TagMOOCCompleted    = "Completed"
)

// LineItem is one entry of a department-submitted list (projects, consultancy, MOOC courses).
type LineItem struct {
	Type     string  `json:"type"`
	Title    string  `json:"title,omitempty"`
	Agency   string  `json:"agency,omitempty"`
	Platform string  `json:"platform,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
}

// NarrativeEntry is a narrative achievement with a score attached by the department's evaluator.
type NarrativeEntry struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// listEnvelope is the versioned storage format: {"version":1,"items":[...]}.
type listEnvelope struct {
	Version int             `json:"version"`
	Items   json.RawMessage `json:"items"`
}

// decodeList decodes a stored list into dst (a pointer to a slice).
// Accepted inputs: a versioned envelope, a bare array (legacy rows) or a single object.
// Anything else leaves dst empty.
func decodeList(data []byte, dst interface{}) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return false
	}

	switch data[0] {
	case '[':
		return json.Unmarshal(data, dst) == nil
	case '{':
		var env listEnvelope
		if err := json.Unmarshal(data, &env); err == nil && env.Version != 0 {
			if env.Version != lineItemsVersion || len(env.Items) == 0 {
				return false
			}
			return json.Unmarshal(env.Items, dst) == nil
		}
		// single object
		return json.Unmarshal(append(append([]byte{'['}, data...), ']'), dst) == nil
	}
	return false
}

// DecodeLineItems never fails: malformed or unknown input is treated as "no entries".
func DecodeLineItems(data []byte) []LineItem {
	var items []LineItem
	if !decodeList(data, &items) {
		return nil
	}
	return items
}

// DecodeNarratives never fails: malformed or unknown input is treated as "no entries".
func DecodeNarratives(data []byte) []NarrativeEntry {
	var entries []NarrativeEntry
	if !decodeList(data, &entries) {
		return nil
	}
	return entries
}

// EncodeLineItems stores items in the current versioned format.
func EncodeLineItems(items []LineItem) ([]byte, error) {
	return encodeList(items)
}

func EncodeNarratives(entries []NarrativeEntry) ([]byte, error) {
	return encodeList(entries)
}

func encodeList(v interface{}) ([]byte, error) {
	items, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(listEnvelope{Version: lineItemsVersion, Items: items})
}

// normalizeTag makes "Govt-Sponsored", "govt sponsored" and "GOVT_SPONSORED" equal.
func normalizeTag(tag string) string {
	var b strings.Builder
	for _, r := range tag {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func (it LineItem) hasType(tags ...string) bool {
	typ := normalizeTag(it.Type)
	for _, tag := range tags {
		if typ == normalizeTag(tag) {
			return true
		}
	}
	return false
}

// NormalizeAmount converts an amount to rupees: amounts below 1000 are in lakhs.
func NormalizeAmount(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount < lakhThreshold {
		return amount * lakh
	}
	return amount
}

// SumAmounts sums the normalized amounts of the items of any of the given types.
func SumAmounts(items []LineItem, tags ...string) float64 {
	var total float64
	for _, it := range items {
		if it.hasType(tags...) {
			total += NormalizeAmount(it.Amount)
		}
	}
	return total
}

// CountTyped counts the items of any of the given types.
func CountTyped(items []LineItem, tags ...string) int {
	var n int
	for _, it := range items {
		if it.hasType(tags...) {
			n++
		}
	}
	return n
}

func sumNarratives(entries []NarrativeEntry) float64 {
	var total float64
	for _, e := range entries {
		if e.Score > 0 {
			total += e.Score
		}
	}
	return total
}
