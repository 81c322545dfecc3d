package rustemitter

import (
	"fmt"

	"github.com/apigenlab/apigen/internal/naming"
	genspec "github.com/apigenlab/apigen/internal/spec"
	"github.com/apigenlab/apigen/internal/statuscode"
)

type errorView struct {
	ErrorType string
	Variants  []variantView
}

type variantView struct {
	Ident    string
	Detail   string // escaped for the write! literal
	CodeName string
}

// RenderError renders one error enumeration: the enum body, its Display impl
// (verbatim detail text), the std::error::Error marker, and the HTTP status
// mapping. All matches are built from the same ordered variant slice, so a
// variant can never appear in one match and not the other.
func RenderError(es genspec.ErrorSpec) (string, error) {
	if !naming.IsIdent(es.ErrorType) {
		return "", fmt.Errorf("error enum %q: name is not an identifier", es.ErrorType)
	}
	if len(es.Variants) == 0 {
		return "", fmt.Errorf("error enum %s: variant list is empty", es.ErrorType)
	}

	scope := naming.NewScope(fmt.Sprintf("error enum %s", es.ErrorType))
	view := errorView{
		ErrorType: es.ErrorType,
		Variants:  make([]variantView, 0, len(es.Variants)),
	}
	for _, v := range es.Variants {
		ident, err := naming.Variant(v.Detail)
		if err != nil {
			return "", fmt.Errorf("error enum %s: %w", es.ErrorType, err)
		}
		if err := scope.Claim(ident, v.Detail); err != nil {
			return "", err
		}
		if _, err := statuscode.Resolve(v.CodeName); err != nil {
			return "", fmt.Errorf("error enum %s: variant %q: %w", es.ErrorType, v.Detail, err)
		}
		view.Variants = append(view.Variants, variantView{
			Ident:    ident,
			Detail:   rustString(v.Detail),
			CodeName: v.CodeName,
		})
	}

	return render("error", errorTemplate, view)
}
