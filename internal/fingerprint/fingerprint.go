// Package fingerprint computes stable content fingerprints for
// character definitions. A fingerprint changes iff a behavior-relevant
// field changes, which is how meaningful edits are detected between
// evaluation runs.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// HashLength is the number of hex characters in a fingerprint.
const HashLength = 12

// Hash returns the content fingerprint of a definition snapshot. It is
// a pure function: no I/O, no clock, no randomness. Serialisation goes
// through a map so keys are emitted in sorted order regardless of how
// the source record laid its fields out.
func Hash(snap domain.DefinitionSnapshot) string {
	knowledge := snap.Knowledge
	if knowledge == nil {
		knowledge = []string{}
	}

	payload := map[string]any{
		"name":         snap.Name,
		"role":         snap.Role,
		"personality":  snap.Personality,
		"instructions": snap.Instructions,
		"knowledge":    knowledge,
		"voice":        snap.Voice,
	}

	// json.Marshal sorts map keys; marshalling strings cannot fail.
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:HashLength]
}

// HashDefinition fingerprints a full character record by first reducing
// it to its behavior-relevant snapshot.
func HashDefinition(def domain.CharacterDefinition) string {
	return Hash(def.Snapshot())
}
