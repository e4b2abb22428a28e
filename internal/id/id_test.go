package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		v, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
	assert.Len(t, seen, 500)
}

func TestNewScriptID_Format(t *testing.T) {
	v := NewScriptID()
	assert.True(t, strings.HasPrefix(v, ScriptPrefix+"-"))
	assert.Len(t, v, len(ScriptPrefix)+1+21)
}
