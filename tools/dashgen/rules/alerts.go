package rules

// AlertRules returns a PrometheusRule CR containing alert rules for the
// pricepi gateway and its upstream API calls.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "pricepi-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "pricepi-alerts",
					Rules: []Rule{
						{
							Alert: "PricepiDown",
							Expr:  `absent(up{job="pricepi"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Pricepi gateway is down",
								"description": "The pricepi job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "PricepiHealthzFailing",
							Expr:  `pricepi_healthz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Pricepi gateway health check is failing",
								"description": "The health probe has been failing for more than 2 minutes.",
							},
						},
						{
							Alert: "PricepiHighErrorRate",
							Expr:  `pricepi:http_errors:rate5m / pricepi:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on the Pricepi gateway",
								"description": "More than 5% of gateway requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "PricepiUpstreamFailures",
							Expr:  `pricepi:client_failures:rate5m / pricepi:client_requests:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Pricepi API calls are failing",
								"description": "More than 10% of Pricepi API calls ended in a remote, parse, HTTP or transport error.",
							},
						},
						{
							Alert: "PricepiParseErrors",
							Expr:  `increase(pricepi_client_requests_total{outcome="parse_error"}[15m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Pricepi responses failed to parse",
								"description": "The Pricepi API returned results with missing or malformed fields in the last 15 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
