package spec

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apigenlab/apigen/internal/naming"
	"github.com/apigenlab/apigen/internal/statuscode"
)

// scalarTypes maps OpenAPI scalar types to the Rust types used in emitted
// source.
var scalarTypes = map[string]string{
	"integer": "i64",
	"number":  "f64",
	"string":  "String",
	"boolean": "bool",
}

// BuildAPIModel converts a validated OpenAPI v3 document into the Type Model.
// Schema and path iteration is sorted so the same document always produces
// the same model, and therefore byte-identical artifacts.
func BuildAPIModel(ctx context.Context, doc *openapi3.T) (*APIModel, error) {
	_ = ctx
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	m := &APIModel{}
	if doc.Info != nil {
		m.Title = strings.TrimSpace(doc.Info.Title)
		m.Version = strings.TrimSpace(doc.Info.Version)
		m.Description = strings.TrimSpace(doc.Info.Description)
	}

	if doc.Components != nil && doc.Components.Schemas != nil {
		names := make([]string, 0, len(doc.Components.Schemas))
		for name := range doc.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := buildSchema(m, name, doc.Components.Schemas[name]); err != nil {
				return nil, fmt.Errorf("schema %s: %w", name, err)
			}
		}
	}

	if doc.Paths != nil {
		paths := make([]string, 0, len(doc.Paths))
		for p := range doc.Paths {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			item := doc.Paths[p]
			if item == nil {
				continue
			}
			for _, pair := range []struct {
				method string
				op     *openapi3.Operation
			}{
				{"get", item.Get},
				{"post", item.Post},
				{"put", item.Put},
				{"delete", item.Delete},
				{"patch", item.Patch},
				{"head", item.Head},
			} {
				if pair.op == nil {
					continue
				}
				om, err := buildOperation(p, pair.method, item, pair.op)
				if err != nil {
					return nil, fmt.Errorf("operation %s %s: %w", pair.method, p, err)
				}
				m.Operations = append(m.Operations, *om)
			}
		}
	}

	return m, nil
}

func buildSchema(m *APIModel, name string, ref *openapi3.SchemaRef) error {
	if ref == nil || ref.Value == nil {
		return fmt.Errorf("empty schema")
	}
	s := ref.Value
	if s.Title != "" && s.Title != name {
		return fmt.Errorf("title %q must equal the schema name", s.Title)
	}

	switch s.Type {
	case "array":
		target, err := renderInline(s.Items)
		if err != nil {
			return fmt.Errorf("array items: %w", err)
		}
		m.Aliases = append(m.Aliases, AliasSpec{
			Title:  name,
			Doc:    s.Description,
			Target: "Vec<" + target + ">",
		})
		return nil
	case "object", "":
		if len(s.Properties) > 0 {
			props, err := buildProps(s.Properties)
			if err != nil {
				return err
			}
			m.Structs = append(m.Structs, StructSpec{Title: name, Doc: s.Description, Props: props})
			return nil
		}
		if s.AdditionalProperties.Schema != nil {
			target, err := renderInline(s.AdditionalProperties.Schema)
			if err != nil {
				return fmt.Errorf("additional properties: %w", err)
			}
			m.Aliases = append(m.Aliases, AliasSpec{
				Title:  name,
				Doc:    s.Description,
				Target: "HashMap<String, " + target + ">",
			})
			return nil
		}
		// An object with neither properties nor additionalProperties is a
		// valid empty struct.
		m.Structs = append(m.Structs, StructSpec{Title: name, Doc: s.Description})
		return nil
	default:
		return fmt.Errorf("unsupported schema type %q", s.Type)
	}
}

func buildProps(props openapi3.Schemas) ([]PropertySpec, error) {
	titles := make([]string, 0, len(props))
	for t := range props {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	out := make([]PropertySpec, 0, len(titles))
	for _, title := range titles {
		ref := props[title]
		typ, err := renderInline(ref)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", title, err)
		}
		doc := ""
		if ref.Ref == "" && ref.Value != nil {
			doc = ref.Value.Description
		}
		out = append(out, PropertySpec{Title: title, Type: typ, Doc: doc})
	}
	return out, nil
}

// renderInline renders a schema as a type usable in place: scalars, named
// references, vectors, and string-keyed maps. Anything else must be lifted to
// a named schema first.
func renderInline(ref *openapi3.SchemaRef) (string, error) {
	if ref == nil {
		return "", fmt.Errorf("missing schema")
	}
	if ref.Ref != "" {
		return refName(ref.Ref), nil
	}
	s := ref.Value
	if s == nil {
		return "", fmt.Errorf("missing schema")
	}
	if t, ok := scalarTypes[s.Type]; ok {
		return t, nil
	}
	switch s.Type {
	case "array":
		inner, err := renderInline(s.Items)
		if err != nil {
			return "", err
		}
		return "Vec<" + inner + ">", nil
	case "object":
		if s.AdditionalProperties.Schema != nil {
			inner, err := renderInline(s.AdditionalProperties.Schema)
			if err != nil {
				return "", err
			}
			return "HashMap<String, " + inner + ">", nil
		}
	}
	return "", fmt.Errorf("schema type %q cannot be rendered inline; use a reference", s.Type)
}

func refName(ref string) string {
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}

func buildOperation(path, method string, item *openapi3.PathItem, op *openapi3.Operation) (*OperationModel, error) {
	id := strings.TrimSpace(op.OperationID)
	if id == "" {
		id = pathSlug(path)
	}

	om := &OperationModel{
		ID:      id,
		Method:  method,
		Path:    path,
		Summary: strings.TrimSpace(op.Summary),
	}

	params, err := buildParams(item.Parameters, op.Parameters)
	if err != nil {
		return nil, err
	}
	om.Params = params

	success, err := successResponse(op)
	if err != nil {
		return nil, err
	}
	om.ResponseType = success

	errs, err := buildErrors(id, op)
	if err != nil {
		return nil, err
	}
	om.Errors = errs

	return om, nil
}

func buildParams(itemParams, opParams openapi3.Parameters) ([]ParamModel, error) {
	all := make([]*openapi3.Parameter, 0, len(itemParams)+len(opParams))
	for _, pref := range itemParams {
		if pref != nil && pref.Value != nil {
			all = append(all, pref.Value)
		}
	}
	for _, pref := range opParams {
		if pref != nil && pref.Value != nil {
			all = append(all, pref.Value)
		}
	}

	out := make([]ParamModel, 0, len(all))
	for _, p := range all {
		switch p.In {
		case "path":
			inner, err := renderInline(p.Schema)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
			}
			out = append(out, ParamModel{Name: p.Name, RustType: "web::Path<" + inner + ">"})
		case "query":
			// Structured query parameters fall back to the raw request; the
			// handler extracts what it needs.
			if p.Schema != nil && p.Schema.Ref != "" {
				return []ParamModel{{Name: "request", RustType: "HttpRequest"}}, nil
			}
			return nil, fmt.Errorf("parameter %s: unsupported query parameter; use a schema reference", p.Name)
		default:
			return nil, fmt.Errorf("parameter %s: unsupported location %q", p.Name, p.In)
		}
	}
	return out, nil
}

func successResponse(op *openapi3.Operation) (string, error) {
	rref, ok := op.Responses["200"]
	if !ok || rref == nil || rref.Value == nil {
		return "", fmt.Errorf("missing 200 response")
	}
	media := rref.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return "", fmt.Errorf("200 response: missing application/json schema")
	}
	inline, err := renderInline(media.Schema)
	if err != nil {
		return "", fmt.Errorf("200 response: %w", err)
	}
	if media.Schema.Ref == "" && media.Schema.Value != nil {
		if _, scalar := scalarTypes[media.Schema.Value.Type]; scalar {
			return inline, nil
		}
	}
	return "web::Json<" + inline + ">", nil
}

// buildErrors collects the error enumeration for one operation from its
// non-2xx responses. Each such response must carry a string enum; every enum
// value becomes one variant bound to the response's status code.
func buildErrors(id string, op *openapi3.Operation) (*ErrorSpec, error) {
	codes := make([]string, 0, len(op.Responses))
	for code := range op.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var variants []ErrorVariant
	for _, code := range codes {
		if strings.HasPrefix(code, "2") {
			continue
		}
		rref := op.Responses[code]
		if rref == nil || rref.Value == nil {
			continue
		}
		media := rref.Value.Content.Get("application/json")
		if media == nil || media.Schema == nil || media.Schema.Value == nil {
			return nil, fmt.Errorf("response %s: missing application/json schema", code)
		}
		s := media.Schema.Value
		if s.Type != "string" {
			return nil, fmt.Errorf("response %s: only string schemas are allowed in error responses", code)
		}
		if len(s.Enum) == 0 {
			return nil, fmt.Errorf("response %s: error schema must enumerate its variants", code)
		}
		numeric, err := strconv.Atoi(code)
		if err != nil {
			return nil, fmt.Errorf("response %s: status code is not numeric", code)
		}
		name, ok := statuscode.Name(numeric)
		if !ok {
			return nil, fmt.Errorf("response %s: %w", code, &statuscode.UnknownError{CodeName: code})
		}
		for _, v := range s.Enum {
			detail, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("response %s: non-string enum value %v", code, v)
			}
			variants = append(variants, ErrorVariant{Detail: detail, CodeName: name})
		}
	}

	if len(variants) == 0 {
		return nil, nil
	}
	return &ErrorSpec{
		ErrorType: naming.CamelCase(id) + "Error",
		Variants:  variants,
	}, nil
}

func pathSlug(path string) string {
	s := strings.Trim(path, "/")
	repl := strings.NewReplacer("-", "_", "/", "_", "{", "", "}", "")
	s = strings.ToLower(repl.Replace(s))
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}
