package models

import (
	"encoding/json"
	"math"
)

// SetsKind discriminates the shapes a template's "sets" field can take.
// Stored templates are inconsistent: newer ones carry a plain count, older
// ones a prebuilt set array, and a few carry garbage. The ambiguity is
// resolved once here and never leaks past the normalizer.
type SetsKind int

const (
	SetsInvalid SetsKind = iota // missing or malformed; normalizer warns and yields no sets
	SetsCount                   // positive integer: expand to N blank sets
	SetsPrebuilt                // already-built set array: pass through unchanged
)

// RawSets is the tagged union behind ExerciseTemplate.Sets.
// The zero value is SetsInvalid.
type RawSets struct {
	kind     SetsKind
	count    int
	prebuilt []SetRecord
}

// CountSets returns a RawSets holding a requested set count.
func CountSets(n int) RawSets {
	if n < 1 {
		return RawSets{}
	}
	return RawSets{kind: SetsCount, count: n}
}

// PrebuiltSets returns a RawSets holding an explicit set array.
func PrebuiltSets(sets []SetRecord) RawSets {
	return RawSets{kind: SetsPrebuilt, prebuilt: sets}
}

// Kind reports which shape this RawSets holds.
func (s RawSets) Kind() SetsKind { return s.kind }

// Count returns the requested set count. Only meaningful for SetsCount.
func (s RawSets) Count() int { return s.count }

// Prebuilt returns the explicit set array. Only meaningful for SetsPrebuilt.
func (s RawSets) Prebuilt() []SetRecord { return s.prebuilt }

// UnmarshalJSON probes the raw value: a JSON number becomes a count, an array
// becomes prebuilt sets. Anything else (string, bool, null, object, a count
// below one, a fractional count) is SetsInvalid, not a decode error.
func (s *RawSets) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n >= 1 && n == math.Trunc(n) {
			*s = RawSets{kind: SetsCount, count: int(n)}
		} else {
			*s = RawSets{}
		}
		return nil
	}

	var sets []SetRecord
	if err := json.Unmarshal(data, &sets); err == nil {
		*s = RawSets{kind: SetsPrebuilt, prebuilt: sets}
		return nil
	}

	*s = RawSets{}
	return nil
}

// MarshalJSON writes back whichever shape is held; SetsInvalid marshals as null.
func (s RawSets) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case SetsCount:
		return json.Marshal(s.count)
	case SetsPrebuilt:
		return json.Marshal(s.prebuilt)
	default:
		return []byte("null"), nil
	}
}
