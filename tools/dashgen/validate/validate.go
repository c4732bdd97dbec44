// Package validate checks the PromQL in generated dashboards and rule files
// against the set of metric names the ranker exports.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/storefront-ranker/tools/dashgen/rules"
)

// Result collects validation findings. Errors are expressions that do not
// parse; warnings are selectors naming a metric that is not known.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

// Expr checks one expression and appends findings to r, prefixed by where.
func (r *Result) Expr(where, expr string, known map[string]bool) {
	e, err := parser.ParseExpr(expr)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", where, err))
		return
	}

	parser.Inspect(e, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !Known(vs.Name, known) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})
}

// Known reports whether name is a known metric, resolving histogram series
// to their base name.
func Known(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Dashboard checks every "expr" string in a built dashboard. The dashboard
// is walked as generic JSON so any panel type is covered.
func Dashboard(dash any, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("encoding dashboard: %v", err))
		return r
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return r
	}

	walk(doc, "$", func(path, expr string) {
		r.Expr(path, expr, known)
	})
	return r
}

// Rules checks every rule expression in cr.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range cr.Spec.Groups {
		for i, rule := range g.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			if name == "" {
				r.Errors = append(r.Errors, fmt.Sprintf("%s[%d]: rule has neither record nor alert", g.Name, i))
			}
			r.Expr(fmt.Sprintf("%s/%s", g.Name, name), rule.Expr, known)
		}
	}
	return r
}

func walk(node any, path string, visit func(path, expr string)) {
	switch n := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := path + "." + k
			if s, ok := n[k].(string); ok && k == "expr" {
				visit(child, s)
				continue
			}
			walk(n[k], child, visit)
		}
	case []any:
		for i, v := range n {
			walk(v, fmt.Sprintf("%s[%d]", path, i), visit)
		}
	}
}
