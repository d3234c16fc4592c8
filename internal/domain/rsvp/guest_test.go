package rsvp

import (
	"errors"
	"testing"
)

func TestGuestList_AddStopsAtLimit(t *testing.T) {
	var list GuestList
	for i := 1; i <= MaxCompanions; i++ {
		var field GuestField
		var err error
		list, field, err = list.Add()
		if err != nil {
			t.Fatalf("Add #%d returned error: %v", i, err)
		}
		if field.Index != i {
			t.Fatalf("expected index %d, got %d", i, field.Index)
		}
	}

	list, _, err := list.Add()
	if !errors.Is(err, ErrTooManyCompanions) {
		t.Fatalf("expected ErrTooManyCompanions, got %v", err)
	}
	if len(list) != MaxCompanions {
		t.Fatalf("expected %d rows, got %d", MaxCompanions, len(list))
	}
}

func TestGuestList_RemoveRenumbers(t *testing.T) {
	list := GuestList{
		{Index: 1, Value: "Ana"},
		{Index: 2, Value: "Bruno"},
		{Index: 3, Value: "Carla"},
	}

	out, err := list.Remove(2)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].Index != 1 || out[0].Value != "Ana" || out[1].Index != 2 || out[1].Value != "Carla" {
		t.Fatalf("unexpected rows after remove: %+v", out)
	}
	if list[1].Value != "Bruno" {
		t.Fatalf("Remove must not mutate the original list")
	}

	if _, err := out.Remove(5); !errors.Is(err, ErrCompanionNotFound) {
		t.Fatalf("expected ErrCompanionNotFound, got %v", err)
	}
}

func TestGuestList_SetClearsError(t *testing.T) {
	list := GuestList{{Index: 1, Value: "", Error: MsgFillAllFields}}
	if err := list.Set(1, "Dora"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if list[0].Value != "Dora" || list[0].Error != "" {
		t.Fatalf("unexpected row after set: %+v", list[0])
	}
	if got := list.Values(); len(got) != 1 || got[0] != "Dora" {
		t.Fatalf("unexpected values: %v", got)
	}
}
