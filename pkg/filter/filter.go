// Package filter narrows item selections with CEL expressions before
// combinations are generated.
//
// Expressions see one item at a time through these string variables:
// id, category, garment_type, color, base_color, material and formality.
// CEL reserves the identifier "type", hence garment_type. For example
//
//	formality == "Formal" && base_color != "Red"
package filter

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/outfitscope/outfitscope/pkg/color"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// NewEnv returns the CEL environment item expressions are compiled in.
func NewEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("garment_type", cel.StringType),
		cel.Variable("color", cel.StringType),
		cel.Variable("base_color", cel.StringType),
		cel.Variable("material", cel.StringType),
		cel.Variable("formality", cel.StringType),
	)
}

// Filter is a compiled item predicate. It is safe for concurrent use.
type Filter struct {
	expr    string
	program cel.Program
}

// Compile parses and type-checks expr. The expression must be boolean.
func Compile(expr string) (*Filter, error) {
	env, err := NewEnv()
	if err != nil {
		return nil, fmt.Errorf("creating filter env: %w", err)
	}

	ast, iss := env.Parse(expr)
	if iss.Err() != nil {
		return nil, fmt.Errorf("parsing filter %q: %w", expr, iss.Err())
	}
	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return nil, fmt.Errorf("checking filter %q: %w", expr, iss.Err())
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter %q must be boolean, got %s", expr, checked.OutputType())
	}

	program, err := env.Program(checked)
	if err != nil {
		return nil, fmt.Errorf("building filter %q: %w", expr, err)
	}
	return &Filter{expr: expr, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Match reports whether the item satisfies the expression. Evaluation errors
// count as no match.
func (f *Filter) Match(it wardrobe.Item) bool {
	out, _, err := f.program.Eval(map[string]any{
		"id":           it.ID,
		"category":     it.Category,
		"garment_type": it.Type,
		"color":        it.Color,
		"base_color":   color.BaseColor(it.Color),
		"material":     it.Material,
		"formality":    string(it.Formality),
	})
	if err != nil {
		return false
	}
	ok, _ := out.Value().(bool)
	return ok
}

// Items returns the items that match, in order.
func (f *Filter) Items(items []wardrobe.Item) []wardrobe.Item {
	var out []wardrobe.Item
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Selection returns a copy of sel with non-matching items removed.
// Categories are kept even when they end up empty.
// A nil filter returns sel unchanged.
func (f *Filter) Selection(sel *wardrobe.Selection) *wardrobe.Selection {
	if f == nil {
		return sel
	}
	out := wardrobe.NewSelection()
	for _, ci := range sel.Categories() {
		out.Set(ci.Category, f.Items(ci.Items))
	}
	return out
}
