package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EntityID is an opaque identifier for projects, buckets, tasks and users.
//
// The backend sends identifiers either as JSON numbers (64-bit snowflakes) or
// as JSON strings, depending on the call path. EntityID keeps the exact
// decimal text and never routes it through float64. Integer forms are
// canonicalised on construction, so 42, "42" and "+042" are the same ID.
// A zero-padded string such as "007" is therefore the integer 7 and is sent
// back as the number 7. Non-integer strings are kept verbatim.
type EntityID string

// ParseEntityID builds an EntityID from user or wire text.
func ParseEntityID(s string) EntityID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if canon, ok := canonicalInteger(s); ok {
		return EntityID(canon)
	}
	return EntityID(s)
}

// IDFromInt64 returns the EntityID for an integer identifier.
func IDFromInt64(n int64) EntityID {
	return EntityID(strconv.FormatInt(n, 10))
}

// canonicalInteger strips sign and leading zeros from a decimal literal.
func canonicalInteger(s string) (string, bool) {
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if s == "" {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", false
		}
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0", true
	}
	if neg {
		return "-" + s, true
	}
	return s, true
}

// String returns the canonical text of the ID.
func (id EntityID) String() string {
	return string(id.Canonical())
}

// Canonical returns the normalised form used for comparisons and map keys.
func (id EntityID) Canonical() EntityID {
	return ParseEntityID(string(id))
}

// IsZero reports whether the ID is absent.
func (id EntityID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Equal compares two IDs by their canonical text.
func (id EntityID) Equal(other EntityID) bool {
	return id.Canonical() == other.Canonical()
}

// IsInteger reports whether the ID is a decimal integer.
func (id EntityID) IsInteger() bool {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return false
	}
	_, ok := canonicalInteger(s)
	return ok
}

// Int64 returns the ID as an int64 when it fits.
func (id EntityID) Int64() (int64, bool) {
	if !id.IsInteger() {
		return 0, false
	}
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON writes integer IDs as bare number literals with the exact
// original digits, other IDs as strings, and the zero ID as null.
func (id EntityID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	canon := id.String()
	if id.IsInteger() {
		return []byte(canon), nil
	}
	return json.Marshal(canon)
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "" || raw == "null":
		*id = ""
		return nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidID, raw)
		}
		*id = ParseEntityID(s)
		return nil
	}
	canon, ok := canonicalInteger(raw)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidID, raw)
	}
	*id = EntityID(canon)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id EntityID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *EntityID) UnmarshalText(text []byte) error {
	*id = ParseEntityID(string(text))
	return nil
}

// ParseEntityIDs converts a list of user-supplied strings.
func ParseEntityIDs(values []string) []EntityID {
	ids := make([]EntityID, 0, len(values))
	for _, v := range values {
		ids = append(ids, ParseEntityID(v))
	}
	return ids
}
