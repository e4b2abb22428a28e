// internal/id/id.go
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ScriptPrefix is prepended to every script identifier.
const ScriptPrefix = "scr"

// Generate returns a prefixed NanoID, e.g. "scr-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is like Generate but panics when the system has no entropy.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}

// NewScriptID returns a fresh script identifier.
func NewScriptID() string {
	return MustGenerate(ScriptPrefix)
}
