package rsvp

import "strings"

// ValidationErrors holds one message per field; "" means the field is fine.
type ValidationErrors struct {
	Primary    string   `json:"nome,omitempty"`
	Companions []string `json:"acompanhantes"`
}

// ValidationResult is the outcome of a single validation pass.
type ValidationResult struct {
	Valid  bool             `json:"valid"`
	Errors ValidationErrors `json:"errors"`
}

// FirstInvalidField returns the id of the first field carrying an error,
// or "" when every field is valid.
func (r ValidationResult) FirstInvalidField() string {
	if r.Errors.Primary != "" {
		return PrimaryFieldID
	}
	for i, msg := range r.Errors.Companions {
		if msg != "" {
			return CompanionFieldID(i + 1)
		}
	}
	return ""
}

// Validate checks the primary name and every companion. Per-field rules run
// first; a duplicate then overrides the message on every position sharing
// the same folded value.
func Validate(primary string, companions []string) ValidationResult {
	result := ValidationResult{
		Valid: true,
		Errors: ValidationErrors{
			Companions: make([]string, len(companions)),
		},
	}

	if msg := fieldError(primary); msg != "" {
		result.Errors.Primary = msg
		result.Valid = false
	}
	for i, name := range companions {
		if msg := fieldError(name); msg != "" {
			result.Errors.Companions[i] = msg
			result.Valid = false
		}
	}

	all := make([]string, 0, len(companions)+1)
	all = append(all, primary)
	all = append(all, companions...)
	for _, pos := range DuplicatePositions(all) {
		result.Valid = false
		if pos == 0 {
			result.Errors.Primary = MsgDuplicateInForm
			continue
		}
		result.Errors.Companions[pos-1] = MsgDuplicateInForm
	}

	return result
}

// DuplicatePositions returns, in ascending order, every position of names
// whose normalized value appears more than once. Empty names never match.
func DuplicatePositions(names []string) []int {
	groups := make(map[string][]int, len(names))
	for i, name := range names {
		key := Normalize(name)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], i)
	}

	var out []int
	for i, name := range names {
		key := Normalize(name)
		if key != "" && len(groups[key]) > 1 {
			out = append(out, i)
		}
	}
	return out
}

func fieldError(name string) string {
	switch {
	case trimmed(name) == "":
		return MsgFillAllFields
	case IsBlocked(name):
		return MsgNotInvited
	}
	return ""
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
