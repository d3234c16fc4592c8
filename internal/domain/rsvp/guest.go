package rsvp

import "fmt"

// MaxCompanions is the number of companion rows a guest may add.
const MaxCompanions = 3

// PrimaryFieldID is the id of the primary name input on the page.
const PrimaryFieldID = "nome"

// GuestField is one companion row. Index is 1-based and doubles as the
// suffix of the input id on the page.
type GuestField struct {
	Index int    `json:"index"`
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// FieldID returns the id of the input bound to this row.
func (g GuestField) FieldID() string {
	return CompanionFieldID(g.Index)
}

// CompanionFieldID returns the input id of the companion at index.
func CompanionFieldID(index int) string {
	return fmt.Sprintf("acompanhante%d", index)
}

// GuestList is the ordered set of companion rows.
type GuestList []GuestField

// Add appends a new empty row. The list is left untouched when full.
func (l GuestList) Add() (GuestList, GuestField, error) {
	if len(l) >= MaxCompanions {
		return l, GuestField{}, ErrTooManyCompanions
	}
	field := GuestField{Index: len(l) + 1}
	return append(l, field), field, nil
}

// Remove drops the row with the given index and renumbers the rest 1..n.
func (l GuestList) Remove(index int) (GuestList, error) {
	pos := l.position(index)
	if pos == -1 {
		return l, ErrCompanionNotFound
	}
	out := make(GuestList, 0, len(l)-1)
	out = append(out, l[:pos]...)
	out = append(out, l[pos+1:]...)
	for i := range out {
		out[i].Index = i + 1
	}
	return out, nil
}

// Set replaces the value of the row with the given index and clears its error.
func (l GuestList) Set(index int, value string) error {
	pos := l.position(index)
	if pos == -1 {
		return ErrCompanionNotFound
	}
	l[pos].Value = value
	l[pos].Error = ""
	return nil
}

// Values returns the trimmed values in order.
func (l GuestList) Values() []string {
	out := make([]string, len(l))
	for i, g := range l {
		out[i] = trimmed(g.Value)
	}
	return out
}

// Clone returns an independent copy.
func (l GuestList) Clone() GuestList {
	if l == nil {
		return nil
	}
	out := make(GuestList, len(l))
	copy(out, l)
	return out
}

func (l GuestList) position(index int) int {
	for i, g := range l {
		if g.Index == index {
			return i
		}
	}
	return -1
}
