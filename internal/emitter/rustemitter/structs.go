package rustemitter

import (
	"fmt"

	"github.com/apigenlab/apigen/internal/naming"
	genspec "github.com/apigenlab/apigen/internal/spec"
)

type structView struct {
	DocLines []string
	Title    string
	Fields   []fieldView
}

type fieldView struct {
	DocLines []string
	Name     string
	Type     string
	Rename   bool
	Wire     string
}

// RenderStruct renders one serializable data structure from a StructSpec.
// Reserved property titles are escaped through the naming resolver while the
// wire name is preserved via a serde rename; a spec with zero properties
// yields a valid empty struct.
func RenderStruct(ss genspec.StructSpec) (string, error) {
	if !naming.IsIdent(ss.Title) {
		return "", fmt.Errorf("struct %q: title is not an identifier", ss.Title)
	}

	scope := naming.NewScope(fmt.Sprintf("struct %s", ss.Title))
	view := structView{
		DocLines: docLines(ss.Doc),
		Title:    ss.Title,
		Fields:   make([]fieldView, 0, len(ss.Props)),
	}
	for _, prop := range ss.Props {
		name, renamed, err := naming.Field(prop.Title)
		if err != nil {
			return "", fmt.Errorf("struct %s: property %q: %w", ss.Title, prop.Title, err)
		}
		if err := scope.Claim(name, prop.Title); err != nil {
			return "", err
		}
		view.Fields = append(view.Fields, fieldView{
			DocLines: docLines(prop.Doc),
			Name:     name,
			Type:     prop.Type,
			Rename:   renamed,
			Wire:     prop.Title,
		})
	}

	return render("struct", structTemplate, view)
}

type aliasView struct {
	DocLines []string
	Title    string
	Target   string
}

// RenderAlias renders a named type alias (list or map form).
func RenderAlias(as genspec.AliasSpec) (string, error) {
	if !naming.IsIdent(as.Title) {
		return "", fmt.Errorf("alias %q: title is not an identifier", as.Title)
	}
	return render("alias", aliasTemplate, aliasView{
		DocLines: docLines(as.Doc),
		Title:    as.Title,
		Target:   as.Target,
	})
}
