package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withGenerateStub swaps the generate runner for a capture function and
// restores it when the test ends.
func withGenerateStub(t *testing.T, captured **GenerateConfig) {
	t.Helper()
	prev := generateRunner
	generateRunner = func(ctx context.Context, cfg *GenerateConfig) error {
		*captured = cfg
		return nil
	}
	t.Cleanup(func() { generateRunner = prev })
}

func execRoot(args ...string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestGenerateFlagOverrides(t *testing.T) {
	var got *GenerateConfig
	withGenerateStub(t, &got)

	err := execRoot("generate",
		"--input", "api.yaml",
		"--out", "build",
		"--file-name", "server.rs",
		"--force",
		"--verbose",
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got == nil {
		t.Fatalf("runner not invoked")
	}
	if got.Input != "api.yaml" || got.Out != "build" || got.FileName != "server.rs" {
		t.Errorf("config: %+v", got)
	}
	if !got.Force || !got.Verbose || got.DryRun {
		t.Errorf("flags: %+v", got)
	}
}

func TestGenerateDefaultFileName(t *testing.T) {
	var got *GenerateConfig
	withGenerateStub(t, &got)

	if err := execRoot("generate", "--input", "api.yaml"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.FileName != "api.rs" {
		t.Errorf("file name: %q", got.FileName)
	}
}

func TestGenerateConfigFileMerge(t *testing.T) {
	var got *GenerateConfig
	withGenerateStub(t, &got)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "apigen.yaml")
	content := "input: from-config.yaml\nout: src\nfile-name: api.rs\nforce: true\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Flag overrides the config file value for input only.
	if err := execRoot("--config", cfgPath, "generate", "--input", "cli.yaml"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Input != "cli.yaml" {
		t.Errorf("flag should win over config: %q", got.Input)
	}
	if got.Out != "src" || !got.Force {
		t.Errorf("config values dropped: %+v", got)
	}
}

func TestGenerateConfigFileUnknownField(t *testing.T) {
	var got *GenerateConfig
	withGenerateStub(t, &got)

	cfgPath := filepath.Join(t.TempDir(), "apigen.yaml")
	if err := os.WriteFile(cfgPath, []byte("input: a.yaml\nbogus: 1\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := execRoot("--config", cfgPath, "generate")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestGenerateMissingInput(t *testing.T) {
	var got *GenerateConfig
	withGenerateStub(t, &got)

	err := execRoot("generate")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if got != nil {
		t.Errorf("runner should not run without input")
	}
}

func TestGenerateDryRunRequiresOut(t *testing.T) {
	var got *GenerateConfig
	withGenerateStub(t, &got)

	err := execRoot("generate", "--input", "api.yaml", "--dry-run")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestGenerateUnknownFlag(t *testing.T) {
	var got *GenerateConfig
	withGenerateStub(t, &got)

	err := execRoot("generate", "--nope")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"file-name": "filename",
		"File_Name": "filename",
		" dry-run ": "dryrun",
	}
	for in, want := range cases {
		if got := normalizeKey(in); got != want {
			t.Errorf("normalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValueAsBool(t *testing.T) {
	t.Parallel()

	for _, v := range []any{true, "yes", "1", "TRUE"} {
		got, err := valueAsBool(v)
		if err != nil || !got {
			t.Errorf("valueAsBool(%v) = %v, %v", v, got, err)
		}
	}
	if _, err := valueAsBool("maybe"); err == nil {
		t.Errorf("expected error for ambiguous boolean")
	}
	if _, err := valueAsBool(42); err == nil {
		t.Errorf("expected error for non-boolean type")
	}
}
