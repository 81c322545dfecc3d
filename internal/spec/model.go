package spec

// Type Model definitions consumed by the emitters.
//
// The model is built once per generation run from an OpenAPI document and is
// read-only afterwards; emitters never mutate it.

// APIModel is the root of the Type Model: every named data structure, type
// alias, and operation extracted from one API description.
type APIModel struct {
	Title       string
	Version     string
	Description string
	Structs     []StructSpec
	Aliases     []AliasSpec
	Operations  []OperationModel
}

// StructSpec describes one emitted data structure.
type StructSpec struct {
	Title string
	Doc   string // optional; may span multiple lines
	Props []PropertySpec
}

// PropertySpec is one field of a StructSpec. Type is an opaque reference to a
// target-language type (e.g. "String", "i64", "Vec<Pet>").
type PropertySpec struct {
	Title string
	Type  string
	Doc   string
}

// AliasSpec describes a named type alias for a list or map of another type.
type AliasSpec struct {
	Title  string
	Doc    string
	Target string // e.g. "Vec<Pet>" or "HashMap<String, i64>"
}

// ErrorSpec describes one emitted error enumeration.
type ErrorSpec struct {
	ErrorType string
	Variants  []ErrorVariant
}

// ErrorVariant is one arm of an error enumeration. Detail is the verbatim
// human-readable text; CodeName is a symbolic HTTP status name such as
// "NOT_FOUND" and must resolve in the status vocabulary.
type ErrorVariant struct {
	Detail   string
	CodeName string
}

// OperationModel describes one dispatch method of the service contract.
type OperationModel struct {
	ID           string // operationId, or a slug derived from the path
	Method       string // lowercase HTTP method
	Path         string // path template, e.g. /hello/{user}
	Summary      string
	Params       []ParamModel
	ResponseType string     // success payload type, e.g. "String" or "web::Json<Pet>"
	Errors       *ErrorSpec // nil when the operation declares no error responses
}

// ParamModel is one extracted argument of a contract method.
type ParamModel struct {
	Name     string
	RustType string // e.g. "web::Path<HelloUserPath>" or "HttpRequest"
}
