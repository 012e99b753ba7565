package domain

import "time"

// CharacterDefinition is a character record. The behavior-relevant subset
// (name, role, personality, instructions, knowledge, voice) is what the
// definition hash fingerprints; everything else is display metadata.
type CharacterDefinition struct {
	// ID is the unique identifier for the character.
	ID string

	// OwnerID identifies the author who created the character.
	OwnerID string

	// BookID links to the book that grounds this character, if any.
	BookID string

	// Name is the character's display name.
	Name string

	// Role describes the character's role in the story.
	Role string

	// Personality describes temperament and mannerisms.
	Personality string

	// Instructions are behavioral directives for the character model.
	Instructions string

	// Knowledge lists discrete facts the character knows.
	Knowledge []string

	// Voice describes speech style and register.
	Voice string

	// CreatedAt is when the character was created.
	CreatedAt time.Time

	// UpdatedAt is when the character was last edited.
	UpdatedAt time.Time
}

// CharacterInput is the loosely-typed creation payload accepted at the
// boundary. Optional fields are resolved once, here, rather than at each
// read site.
type CharacterInput struct {
	Name         string
	Role         string
	Personality  string
	Instructions string
	Knowledge    []string
	Voice        string
	BookID       string
}

// NewCharacterDefinition is the single defaulting constructor for
// characters. It normalises missing optional fields so downstream code
// never needs per-field fallbacks.
func NewCharacterDefinition(id, ownerID string, in CharacterInput, now time.Time) CharacterDefinition {
	if in.Knowledge == nil {
		in.Knowledge = []string{}
	}
	return CharacterDefinition{
		ID:           id,
		OwnerID:      ownerID,
		BookID:       in.BookID,
		Name:         in.Name,
		Role:         in.Role,
		Personality:  in.Personality,
		Instructions: in.Instructions,
		Knowledge:    in.Knowledge,
		Voice:        in.Voice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Snapshot extracts the behavior-relevant fields used for fingerprinting.
// Fields outside this subset never influence the definition hash.
func (c CharacterDefinition) Snapshot() DefinitionSnapshot {
	knowledge := c.Knowledge
	if knowledge == nil {
		knowledge = []string{}
	}
	return DefinitionSnapshot{
		Name:         c.Name,
		Role:         c.Role,
		Personality:  c.Personality,
		Instructions: c.Instructions,
		Knowledge:    knowledge,
		Voice:        c.Voice,
	}
}

// DefinitionSnapshot is the behavior-relevant subset of a character
// definition. It is derived, never stored, and exists only to compute a
// stable content fingerprint.
type DefinitionSnapshot struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Personality  string   `json:"personality"`
	Instructions string   `json:"instructions"`
	Knowledge    []string `json:"knowledge"`
	Voice        string   `json:"voice"`
}
