package naming

import (
	"errors"
	"testing"
)

func TestCamelCase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"user not found", "UserNotFound"},
		{"hello_user", "HelloUser"},
		{"user NOT found", "UserNotFound"},
		{"already CamelCase", "AlreadyCamelcase"},
		{"double__underscore", "DoubleUnderscore"},
		{"  ", ""},
		{"", ""},
		{"single", "Single"},
	}
	for _, tc := range cases {
		if got := CamelCase(tc.in); got != tc.want {
			t.Errorf("CamelCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCamelCaseDeterministic(t *testing.T) {
	t.Parallel()

	for i := 0; i < 3; i++ {
		if got := CamelCase("user not found"); got != "UserNotFound" {
			t.Fatalf("run %d: got %q", i, got)
		}
	}
}

func TestField(t *testing.T) {
	t.Parallel()

	name, renamed, err := Field("user")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if name != "user" || renamed {
		t.Fatalf("plain title mangled: %q renamed=%v", name, renamed)
	}

	name, renamed, err = Field("match")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if name != "match_" || !renamed {
		t.Fatalf("reserved title not escaped: %q renamed=%v", name, renamed)
	}

	name, renamed, err = Field("type")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if name != "type_" || !renamed {
		t.Fatalf("reserved title not escaped: %q renamed=%v", name, renamed)
	}
}

func TestFieldReservedUnhandled(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"self", "Self", "super", "crate", "_"} {
		_, _, err := Field(title)
		var re *ReservedError
		if !errors.As(err, &re) {
			t.Errorf("Field(%q): expected ReservedError, got %v", title, err)
		}
	}
}

func TestFieldNonIdentifier(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "has space", "dash-ed", "1leading"} {
		if _, _, err := Field(title); err == nil {
			t.Errorf("Field(%q): expected error", title)
		}
	}
}

func TestVariant(t *testing.T) {
	t.Parallel()

	ident, err := Variant("user not found")
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	if ident != "UserNotFound" {
		t.Fatalf("ident = %q, want UserNotFound", ident)
	}

	if _, err := Variant("   "); err == nil {
		t.Fatalf("expected error for empty detail")
	}
	if _, err := Variant("404!"); err == nil {
		t.Fatalf("expected error for non-identifier detail")
	}
}

func TestScopeCollision(t *testing.T) {
	t.Parallel()

	scope := NewScope("struct Pet")
	if err := scope.Claim("Name", "name"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	// Same identifier from a distinct input must fail.
	err := scope.Claim("Name", "NAME")
	var ce *CollisionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
	if ce.First != "name" || ce.Second != "NAME" || ce.Ident != "Name" {
		t.Fatalf("collision details wrong: %+v", ce)
	}
	if ce.Scope != "struct Pet" {
		t.Fatalf("scope label missing: %+v", ce)
	}
}

func TestIsIdent(t *testing.T) {
	t.Parallel()

	valid := []string{"user", "match_", "_private", "Abc123"}
	for _, s := range valid {
		if !IsIdent(s) {
			t.Errorf("IsIdent(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "9lives", "with space", "dash-ed"}
	for _, s := range invalid {
		if IsIdent(s) {
			t.Errorf("IsIdent(%q) = true, want false", s)
		}
	}
}
