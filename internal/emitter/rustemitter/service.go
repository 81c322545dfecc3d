package rustemitter

import (
	"fmt"
	"strings"

	"github.com/apigenlab/apigen/internal/naming"
	genspec "github.com/apigenlab/apigen/internal/spec"
)

type methodView struct {
	DocLines []string
	Name     string
	Args     []argView
	Return   string
	Path     string
	Method   string
}

type argView struct {
	Name string
	Type string
}

var routeMethods = map[string]struct{}{
	"get": {}, "post": {}, "put": {}, "delete": {}, "patch": {}, "head": {},
}

// RenderService renders the service contract: the ApiService trait with one
// dispatch method per operation, a route adapter per operation, and the
// run_service binder wiring adapters into an actix App.
func RenderService(ops []genspec.OperationModel) (string, error) {
	if len(ops) == 0 {
		return "", nil
	}

	scope := naming.NewScope("service methods")
	methods := make([]methodView, 0, len(ops))
	for _, op := range ops {
		mv, err := methodViewOf(op)
		if err != nil {
			return "", err
		}
		if err := scope.Claim(mv.Name, op.ID); err != nil {
			return "", err
		}
		methods = append(methods, mv)
	}

	var b strings.Builder

	trait, err := render("trait", traitTemplate, struct{ Methods []methodView }{methods})
	if err != nil {
		return "", err
	}
	b.WriteString(trait)

	for _, mv := range methods {
		b.WriteString("\n")
		route, err := render("route", routeTemplate, mv)
		if err != nil {
			return "", err
		}
		b.WriteString(route)
	}

	b.WriteString("\n")
	runner, err := render("run_service", runServiceTemplate, struct{ Routes []methodView }{methods})
	if err != nil {
		return "", err
	}
	b.WriteString(runner)

	return b.String(), nil
}

func methodViewOf(op genspec.OperationModel) (methodView, error) {
	name, _, err := naming.Field(op.ID)
	if err != nil {
		return methodView{}, fmt.Errorf("operation %q: %w", op.ID, err)
	}
	if _, ok := routeMethods[op.Method]; !ok {
		return methodView{}, fmt.Errorf("operation %q: unsupported HTTP method %q", op.ID, op.Method)
	}
	if strings.TrimSpace(op.ResponseType) == "" {
		return methodView{}, fmt.Errorf("operation %q: missing response type", op.ID)
	}

	ret := op.ResponseType
	if op.Errors != nil {
		ret = fmt.Sprintf("Result<%s, Detailed<%s>>", op.ResponseType, op.Errors.ErrorType)
	}

	args := make([]argView, 0, len(op.Params))
	argScope := naming.NewScope(fmt.Sprintf("operation %s parameters", op.ID))
	if err := argScope.Claim("data", "data"); err != nil {
		return methodView{}, err
	}
	for _, p := range op.Params {
		argName, _, err := naming.Field(p.Name)
		if err != nil {
			return methodView{}, fmt.Errorf("operation %q: parameter %q: %w", op.ID, p.Name, err)
		}
		if err := argScope.Claim(argName, p.Name); err != nil {
			return methodView{}, err
		}
		args = append(args, argView{Name: argName, Type: p.RustType})
	}

	return methodView{
		DocLines: docLines(op.Summary),
		Name:     name,
		Args:     args,
		Return:   ret,
		Path:     op.Path,
		Method:   op.Method,
	}, nil
}
