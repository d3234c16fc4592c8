package rsvp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlocked(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Iza", true},
		{"  IZABELLE  ", true},
		{"Maria Zaza Souza", true},
		{"zabele", true},
		{"Luiza", true},
		{"Ana", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, IsBlocked(tc.name), "IsBlocked(%q)", tc.name)
	}
}

func TestValidate_AllValid(t *testing.T) {
	result := Validate("Ana", []string{"Bruno", "Carla"})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors.Primary)
	assert.Equal(t, []string{"", ""}, result.Errors.Companions)
	assert.Empty(t, result.FirstInvalidField())
}

func TestValidate_EmptyAndBlocked(t *testing.T) {
	result := Validate("  ", []string{"Iza", "Bruno"})

	require.False(t, result.Valid)
	assert.Equal(t, MsgFillAllFields, result.Errors.Primary)
	assert.Equal(t, []string{MsgNotInvited, ""}, result.Errors.Companions)
	assert.Equal(t, PrimaryFieldID, result.FirstInvalidField())
}

func TestValidate_DuplicateFlagsEveryOccurrence(t *testing.T) {
	result := Validate("Ana", []string{"Bruno", " ana "})

	require.False(t, result.Valid)
	assert.Equal(t, MsgDuplicateInForm, result.Errors.Primary)
	assert.Equal(t, []string{"", MsgDuplicateInForm}, result.Errors.Companions)
}

func TestValidate_DuplicateOverridesBlocked(t *testing.T) {
	result := Validate("Bruno", []string{"Iza", "IZA"})

	require.False(t, result.Valid)
	assert.Empty(t, result.Errors.Primary)
	assert.Equal(t, []string{MsgDuplicateInForm, MsgDuplicateInForm}, result.Errors.Companions)
	assert.Equal(t, "acompanhante1", result.FirstInvalidField())
}

func TestDuplicatePositions(t *testing.T) {
	cases := []struct {
		names []string
		want  []int
	}{
		{[]string{"Ana", "Bruno", "Ana"}, []int{0, 2}},
		{[]string{"Ana", "ANA", "ana", "Bia"}, []int{0, 1, 2}},
		{[]string{"", "", "Ana"}, nil},
		{[]string{"Ana", "Bruno"}, nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, DuplicatePositions(tc.names)); diff != "" {
			t.Errorf("DuplicatePositions(%q) mismatch (-want +got):\n%s", tc.names, diff)
		}
	}
}
