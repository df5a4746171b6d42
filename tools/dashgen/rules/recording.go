package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "pricepi-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "pricepi-recording",
					Rules: []Rule{
						{
							Record: "pricepi:http_requests:rate5m",
							Expr:   `sum(rate(pricepi_http_requests_total[5m]))`,
						},
						{
							Record: "pricepi:http_errors:rate5m",
							Expr:   `sum(rate(pricepi_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "pricepi:client_requests:rate5m",
							Expr:   `sum(rate(pricepi_client_requests_total[5m]))`,
						},
						{
							Record: "pricepi:client_failures:rate5m",
							Expr:   `sum(rate(pricepi_client_requests_total{outcome!~"success|invalid_request"}[5m]))`,
						},
						{
							Record: "pricepi:client_products:rate5m",
							Expr:   `sum(rate(pricepi_client_products_total[5m]))`,
						},
						{
							Record: "pricepi:client_requests_by_outcome:rate5m",
							Expr:   `sum(rate(pricepi_client_requests_total[5m])) by (outcome)`,
						},
					},
				},
			},
		},
	}
}
