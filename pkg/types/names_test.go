package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymousNameShape(t *testing.T) {
	name := AnonymousName()
	assert.Len(t, name, 32)
	assert.True(t, IsAnonymousName(name), "generated name must match the anonymous pattern")
}

func TestAnonymousNameUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		name := AnonymousName()
		assert.False(t, seen[name], "generated names must not repeat")
		seen[name] = true
	}
}

func TestIsAnonymousName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "generated shape", in: "0123456789abcdef0123456789abcdef", want: true},
		{name: "uppercase hex rejected", in: "0123456789ABCDEF0123456789ABCDEF", want: false},
		{name: "too short", in: "0123456789abcdef", want: false},
		{name: "too long", in: "0123456789abcdef0123456789abcdef00", want: false},
		{name: "human name", in: "my_set", want: false},
		{name: "empty", in: "", want: false},
		{name: "hex with dash", in: "0123456789abcdef-123456789abcdef", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAnonymousName(tt.in))
		})
	}
}

func TestResolveName(t *testing.T) {
	assert.Equal(t, "explicit", ResolveName("explicit"))

	generated := ResolveName("")
	assert.True(t, IsAnonymousName(generated))
}
