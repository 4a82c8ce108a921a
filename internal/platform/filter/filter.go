// Package filter parses and evaluates AIP-160 filter expressions over flat
// records such as catalog domain cards.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// FieldType describes a supported filter field type.
type FieldType string

const (
	FieldString     FieldType = "string"
	FieldInt        FieldType = "int"
	FieldStringList FieldType = "string_list"
)

// Fields defines filterable fields and their types.
type Fields map[string]FieldType

// Names returns the declared field names in sorted order.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse type-checks a filter string against fields. A blank filter yields a
// nil expression, which Evaluate treats as matching everything.
func Parse(filterStr string, fields Fields) (*expr.Expr, error) {
	if strings.TrimSpace(filterStr) == "" {
		return nil, nil
	}

	decls, err := declare(fields)
	if err != nil {
		return nil, err
	}

	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter %q: %w", filterStr, err)
	}
	return parsed.CheckedExpr.GetExpr(), nil
}

func declare(fields Fields) (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, name := range fields.Names() {
		switch fields[name] {
		case FieldString:
			opts = append(opts, filtering.DeclareIdent(name, filtering.TypeString))
		case FieldInt:
			opts = append(opts, filtering.DeclareIdent(name, filtering.TypeInt))
		case FieldStringList:
			opts = append(opts, filtering.DeclareIdent(name, filtering.TypeList(filtering.TypeString)))
		default:
			return nil, fmt.Errorf("field %s: unsupported type %q", name, fields[name])
		}
	}
	return filtering.NewDeclarations(opts...)
}
