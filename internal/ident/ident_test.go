package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDIsValid(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.True(t, IsValidID(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"canonical", "f47ac10b-58cc-0372-8567-0e02b2c3d479", true},
		{"empty", "", false},
		{"garbage", "not-a-uuid", false},
		{"too short", "f47ac10b-58cc-0372-8567", false},
		// uuid.Parse 는 허용하지만 canonical 형태가 아닌 표기들
		{"braces", "{f47ac10b-58cc-0372-8567-0e02b2c3d479}", false},
		{"urn prefix", "urn:uuid:f47ac10b-58cc-0372-8567-0e02b2c3d479", false},
		{"no hyphens", "f47ac10b58cc037285670e02b2c3d479", false},
		{"uppercase", "F47AC10B-58CC-0372-8567-0E02B2C3D479", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidID(tc.input))
		})
	}
}
