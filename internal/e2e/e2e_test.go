package e2e

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/apigenlab/apigen/internal/cli"
)

// minimal OpenAPI v3 spec with one endpoint, one path parameter schema, and
// two declared error responses
const helloSpec = "" +
	"openapi: 3.0.0\n" +
	"info:\n" +
	"  title: Hello World API\n" +
	"  version: '0.1.0'\n" +
	"paths:\n" +
	"  /hello/{user}:\n" +
	"    get:\n" +
	"      operationId: hello_user\n" +
	"      summary: Greet a user by name\n" +
	"      parameters:\n" +
	"        - name: user\n" +
	"          in: path\n" +
	"          required: true\n" +
	"          schema:\n" +
	"            $ref: '#/components/schemas/HelloUserPath'\n" +
	"      responses:\n" +
	"        '200':\n" +
	"          description: greeting\n" +
	"          content:\n" +
	"            application/json:\n" +
	"              schema:\n" +
	"                type: string\n" +
	"        '403':\n" +
	"          description: blocked\n" +
	"          content:\n" +
	"            application/json:\n" +
	"              schema:\n" +
	"                type: string\n" +
	"                enum: [user is blocked]\n" +
	"        '404':\n" +
	"          description: unknown user\n" +
	"          content:\n" +
	"            application/json:\n" +
	"              schema:\n" +
	"                type: string\n" +
	"                enum: [user not found]\n" +
	"components:\n" +
	"  schemas:\n" +
	"    HelloUserPath:\n" +
	"      type: object\n" +
	"      properties:\n" +
	"        user:\n" +
	"          type: string\n" +
	"          description: User name from the path\n"

func writeTempSpec(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "spec.yaml")
	if err := os.WriteFile(p, []byte(helloSpec), 0o600); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return p
}

func runCLI(t *testing.T, args ...string) {
	t.Helper()
	root := cli.NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("cli execute %v: %v", args, err)
	}
}

func digestFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func TestGenerateHelloWorld(t *testing.T) {
	spec := writeTempSpec(t)
	out := t.TempDir()

	runCLI(t, "generate", "--input", spec, "--out", out)

	data, err := os.ReadFile(filepath.Join(out, "api.rs"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	src := string(data)

	for _, want := range []string{
		"pub struct HelloUserPath {",
		"    pub user: String,",
		"pub enum HelloUserError {",
		"    UserIsBlocked,",
		"    UserNotFound,",
		`write!(f, "user not found")`,
		"HelloUserError::UserIsBlocked => StatusCode::FORBIDDEN,",
		"HelloUserError::UserNotFound => StatusCode::NOT_FOUND,",
		"pub trait ApiService<S>",
		"    async fn hello_user(",
		"    ) -> Result<String, Detailed<HelloUserError>>;",
		`            .route("/hello/{user}", web::get().to(hello_user_route::<T, S>))`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("artifact missing %q", want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	spec := writeTempSpec(t)
	outA := t.TempDir()
	outB := t.TempDir()

	runCLI(t, "generate", "--input", spec, "--out", outA)
	runCLI(t, "generate", "--input", spec, "--out", outB)

	a := digestFile(t, filepath.Join(outA, "api.rs"))
	b := digestFile(t, filepath.Join(outB, "api.rs"))
	if a != b {
		t.Fatalf("runs produced different artifacts: %s vs %s", a, b)
	}
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	spec := writeTempSpec(t)
	out := t.TempDir()

	runCLI(t, "generate", "--input", spec, "--out", out, "--dry-run")

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run wrote files: %v", entries)
	}
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	spec := writeTempSpec(t)
	out := t.TempDir()

	runCLI(t, "generate", "--input", spec, "--out", out)

	root := cli.NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"generate", "--input", spec, "--out", out})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected overwrite refusal")
	}

	runCLI(t, "generate", "--input", spec, "--out", out, "--force")
}

func TestInitThenGenerate(t *testing.T) {
	spec := writeTempSpec(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "apigen.yaml")

	runCLI(t, "init", "--out", cfgPath)

	// The scaffolded config points at api.yaml; override input and out on the
	// command line.
	out := filepath.Join(dir, "src")
	runCLI(t, "--config", cfgPath, "generate", "--input", spec, "--out", out)

	if _, err := os.Stat(filepath.Join(out, "api.rs")); err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
}
