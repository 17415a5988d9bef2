package commands

import (
	"strconv"

	"github.com/leapstack-labs/enforce/internal/cli/output"
	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/eval"
	"github.com/leapstack-labs/enforce/pkg/scope"
)

// BindingView is a variable as shown by --dump-scope and .vars.
type BindingView struct {
	Name  string `json:"name" yaml:"name"`
	Kind  string `json:"kind" yaml:"kind"`
	Value string `json:"value" yaml:"value"`
	Scope int    `json:"scope" yaml:"scope"`
}

func bindingViews(store *scope.Store) []BindingView {
	bindings := store.Bindings()
	views := make([]BindingView, 0, len(bindings))
	for _, b := range bindings {
		text, err := eval.Stringify(b.Value)
		if err != nil {
			text = "<" + ast.KindOf(b.Value) + ">"
		}
		views = append(views, BindingView{Name: b.Name, Kind: ast.KindOf(b.Value), Value: text, Scope: b.Depth})
	}
	return views
}

func renderBindings(r *output.Renderer, views []BindingView) {
	if len(views) == 0 {
		r.Muted("(no variables)")
		return
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{v.Name, v.Kind, v.Value, strconv.Itoa(v.Scope)})
	}
	r.Table([]string{"Name", "Kind", "Value", "Scope"}, rows)
}
