// Package rustemitter renders the generated actix-web server module from a
// Type Model and writes it to disk. Rendering is pure (model in, text out);
// all filesystem effects live in Emit.
package rustemitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/apigenlab/apigen/internal/naming"
	genspec "github.com/apigenlab/apigen/internal/spec"
)

// Options controls how the emitter writes the generated module.
type Options struct {
	OutDir   string // required; target directory for the artifact
	FileName string // artifact file name; defaults to api.rs
	Force    bool   // overwrite existing files
	DryRun   bool   // don't write, only plan
	Verbose  bool
}

// PlannedFile describes a file the emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files and the resolved artifact name.
type Result struct {
	FileName string
	Planned  []PlannedFile
}

// Render produces the complete generated module: the Detailed runtime
// preamble, one struct or alias per named schema, one error enumeration per
// operation that declares error responses, and the service contract.
// Rendering the same model twice yields byte-identical output.
func Render(m *genspec.APIModel) (string, error) {
	if m == nil {
		return "", fmt.Errorf("rustemitter: nil APIModel")
	}

	// One flat scope for every top-level item in the module.
	scope := naming.NewScope("generated module")

	parts := []string{prelude}

	for _, ss := range m.Structs {
		if err := scope.Claim(ss.Title, "schema "+ss.Title); err != nil {
			return "", err
		}
		text, err := RenderStruct(ss)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}

	for _, as := range m.Aliases {
		if err := scope.Claim(as.Title, "schema "+as.Title); err != nil {
			return "", err
		}
		text, err := RenderAlias(as)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}

	for _, op := range m.Operations {
		if op.Errors == nil {
			continue
		}
		if err := scope.Claim(op.Errors.ErrorType, "operation "+op.ID); err != nil {
			return "", err
		}
		text, err := RenderError(*op.Errors)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}

	service, err := RenderService(m.Operations)
	if err != nil {
		return "", err
	}
	if service != "" {
		parts = append(parts, service)
	}

	return strings.Join(parts, "\n"), nil
}

// Emit renders the module and writes it under opts.OutDir.
func Emit(ctx context.Context, m *genspec.APIModel, opts Options) (*Result, error) {
	_ = ctx
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("rustemitter: OutDir is required")
	}
	fileName := strings.TrimSpace(opts.FileName)
	if fileName == "" {
		fileName = "api.rs"
	}

	content, err := Render(m)
	if err != nil {
		return nil, err
	}

	files := map[string][]byte{fileName: []byte(content)}

	// Plan in deterministic order.
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, filepath.ToSlash(p))
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}

	return &Result{FileName: fileName, Planned: planned}, nil
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		if _, serr := os.Stat(p); serr == nil && !force {
			return fmt.Errorf("rustemitter: %q already exists (use --force to overwrite)", p)
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}
