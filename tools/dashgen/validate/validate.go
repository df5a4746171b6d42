// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and only reference known metrics.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/pricepi/tools/dashgen/rules"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Expr parses expr and reports unknown metric names under the given label.
func (r *Result) Expr(label, expr string, known map[string]bool) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		r.errorf("%s: invalid PromQL %q: %v", label, expr, err)
		return
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[vs.Name] {
			r.errorf("%s: unknown metric %q", label, vs.Name)
		}
		return nil
	})
}

// Dashboard validates every Prometheus target in dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) *Result {
	r := &Result{}

	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				panel(r, &p.RowPanel.Panels[i], known)
			}
		}
		if p.Panel != nil {
			panel(r, p.Panel, known)
		}
	}

	return r
}

func panel(r *Result, p *dashboard.Panel, known map[string]bool) {
	title := "untitled panel"
	if p.Title != nil {
		title = *p.Title
	}

	if len(p.Targets) == 0 {
		r.warnf("%s: no targets", title)
		return
	}

	for _, target := range p.Targets {
		// Targets are dataquery variants; the JSON form is stable across
		// SDK versions.
		data, err := json.Marshal(target)
		if err != nil {
			r.errorf("%s: encoding target: %v", title, err)
			continue
		}
		var q struct {
			Expr  string `json:"expr"`
			RefID string `json:"refId"`
		}
		if err := json.Unmarshal(data, &q); err != nil {
			r.errorf("%s: decoding target: %v", title, err)
			continue
		}
		if q.Expr == "" {
			r.errorf("%s/%s: empty expression", title, q.RefID)
			continue
		}
		r.Expr(title+"/"+q.RefID, q.Expr, known)
	}
}

// Rules validates every rule expression in cr. Recording rule names are
// added to known so later rules may reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) *Result {
	r := &Result{}

	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Alert
			if rule.Record != "" {
				name = rule.Record
				if _, err := parser.ParseMetricSelector(rule.Record); err != nil {
					r.errorf("%s/%s: invalid record name: %v", g.Name, name, err)
				}
			}
			r.Expr(g.Name+"/"+name, rule.Expr, known)
			if rule.Alert != "" && rule.Annotations["summary"] == "" {
				r.warnf("%s/%s: alert has no summary", g.Name, name)
			}
		}
	}

	return r
}
