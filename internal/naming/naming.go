// Package naming maps free-text titles from the Type Model to identifiers
// that are legal in the emitted Rust source. It is pure: identical input
// always yields identical output.
package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// reservedWords lists Rust keywords (strict, reserved, and the 2018 edition
// additions) that cannot be used verbatim as field or variant names. Escaping
// appends an underscore and preserves the wire name via a serde rename.
var reservedWords = map[string]struct{}{
	"abstract": {}, "as": {}, "async": {}, "await": {}, "become": {},
	"box": {}, "break": {}, "const": {}, "continue": {}, "do": {},
	"dyn": {}, "else": {}, "enum": {}, "extern": {}, "false": {},
	"final": {}, "fn": {}, "for": {}, "if": {}, "impl": {}, "in": {},
	"let": {}, "loop": {}, "macro": {}, "match": {}, "mod": {},
	"move": {}, "mut": {}, "override": {}, "priv": {}, "pub": {},
	"ref": {}, "return": {}, "static": {}, "struct": {}, "trait": {},
	"true": {}, "try": {}, "type": {}, "typeof": {}, "unsafe": {},
	"unsized": {}, "use": {}, "virtual": {}, "where": {}, "while": {},
	"yield": {},
}

// noEscape holds identifiers that are reserved and have no legal escaped
// form either (appending an underscore does not help `self`, and raw
// identifiers are not allowed for path keywords). Hitting one is fatal.
var noEscape = map[string]struct{}{
	"self": {}, "Self": {}, "super": {}, "crate": {}, "_": {},
}

// ReservedError reports a name that collides with a reserved identifier for
// which no escape rule applies.
type ReservedError struct {
	Name string
}

func (e *ReservedError) Error() string {
	return fmt.Sprintf("naming: reserved identifier %q has no escaped form", e.Name)
}

// CollisionError reports two distinct inputs in one scope resolving to the
// same identifier.
type CollisionError struct {
	Scope  string
	Ident  string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("naming: collision in %s: %q and %q both resolve to identifier %q",
		e.Scope, e.First, e.Second, e.Ident)
}

// CamelCase converts a free-text string to a CamelCase identifier: spaces are
// treated like underscores, each word is capitalized with the remainder
// lowered ("user NOT found" -> "UserNotFound").
func CamelCase(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, word := range strings.Split(s, "_") {
		if word == "" {
			continue
		}
		r := []rune(word)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(strings.ToLower(string(r[1:])))
	}
	return b.String()
}

// Field resolves a property title to the emitted field name. When the title
// is a reserved word, the returned name carries an underscore suffix and
// renamed is true, signalling the emitter to add a serde rename annotation
// preserving the wire name.
func Field(title string) (name string, renamed bool, err error) {
	if !IsIdent(title) {
		return "", false, fmt.Errorf("naming: %q is not an identifier-able property title", title)
	}
	if _, ok := noEscape[title]; ok {
		return "", false, &ReservedError{Name: title}
	}
	if _, ok := reservedWords[title]; ok {
		return title + "_", true, nil
	}
	return title, false, nil
}

// Variant resolves an error variant detail string to its CamelCase
// identifier.
func Variant(detail string) (string, error) {
	if strings.TrimSpace(detail) == "" {
		return "", fmt.Errorf("naming: empty variant detail")
	}
	ident := CamelCase(detail)
	if !IsIdent(ident) {
		return "", fmt.Errorf("naming: variant detail %q does not produce an identifier (got %q)", detail, ident)
	}
	return ident, nil
}

// IsIdent reports whether s is a legal bare identifier: a letter or
// underscore followed by letters, digits, or underscores.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// Scope tracks claimed identifiers within one naming scope (the fields of a
// struct, the variants of an error enum) and detects collisions.
type Scope struct {
	kind string
	seen map[string]string // identifier -> original input
}

// NewScope returns an empty scope labelled for error messages, e.g.
// "struct HelloUserPath".
func NewScope(kind string) *Scope {
	return &Scope{kind: kind, seen: make(map[string]string)}
}

// Claim records that original resolved to ident. It fails with a
// CollisionError when a different original already claimed the identifier.
func (s *Scope) Claim(ident, original string) error {
	if prev, ok := s.seen[ident]; ok {
		return &CollisionError{Scope: s.kind, Ident: ident, First: prev, Second: original}
	}
	s.seen[ident] = original
	return nil
}
