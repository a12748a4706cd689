package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainTree        = "stylec/tree/v1"
	DomainCompilation = "stylec/compilation/v1"
	DomainPreset      = "stylec/preset/v1"
	DomainClass       = "stylec/class/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TreeID identifies a canonical style tree including its key order.
func TreeID(tree *Object) (string, error) {
	data, err := MarshalValue(tree)
	if err != nil {
		return "", fmt.Errorf("TreeID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTree, data), nil
}

// CompilationID identifies compiling tree under a given preset.
// The same tree compiled with a different preset gets a different id.
func CompilationID(tree *Object, presetDigest string) (string, error) {
	treeID, err := TreeID(tree)
	if err != nil {
		return "", fmt.Errorf("CompilationID: %w", err)
	}
	return hashWithDomain(DomainCompilation, []byte(treeID+"\x00"+presetDigest)), nil
}

// PresetDigest identifies a preset document. Map key order in the preset
// is irrelevant, so the canonical form is hashed.
func PresetDigest(preset Value) (string, error) {
	data, err := MarshalCanonical(preset)
	if err != nil {
		return "", fmt.Errorf("PresetDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainPreset, data), nil
}

// ClassHash maps a slug to a short opaque class name.
// The "x" lead keeps the name a valid CSS identifier.
func ClassHash(slug string) string {
	return "x" + hashWithDomain(DomainClass, []byte(slug))[:8]
}
