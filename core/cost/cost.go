package cost

import (
	"fmt"
	"strings"
)

// ToolMetrics holds the per-call cost and observed performance of a tool.
//
//	metrics := cost.ToolMetrics{
//	    Amount:                  0,
//	    Currency:                "USD",
//	    CostDescription:         "included in the ChatSorter plan",
//	    Accuracy:                0.9,
//	    AverageDurationInMillis: 350,
//	}
type ToolMetrics struct {
	// Amount is the cost of a single call.
	Amount float64 `json:"amount"`

	// Currency defaults to USD when empty.
	Currency string `json:"currency,omitempty"`

	CostDescription string `json:"cost_description,omitempty"`

	// Accuracy is a reliability score between 0 and 1.
	Accuracy float64 `json:"accuracy,omitempty"`

	AverageDurationInMillis int64 `json:"average_duration_ms,omitempty"`
}

// String formats the cost, e.g. "0.001000 USD (per API call)".
func (m ToolMetrics) String() string {
	currency := m.Currency
	if currency == "" {
		currency = "USD"
	}

	out := fmt.Sprintf("%.6f %s", m.Amount, currency)
	if m.CostDescription != "" {
		out += " (" + m.CostDescription + ")"
	}
	return out
}

// MetricsString formats the performance figures that are set, e.g.
// "Accuracy: 90.0%, Avg duration: 350ms". It returns "" when none are.
func (m ToolMetrics) MetricsString() string {
	var parts []string
	if m.Accuracy > 0 {
		parts = append(parts, fmt.Sprintf("Accuracy: %.1f%%", m.Accuracy*100))
	}
	if m.AverageDurationInMillis > 0 {
		parts = append(parts, fmt.Sprintf("Avg duration: %dms", m.AverageDurationInMillis))
	}
	return strings.Join(parts, ", ")
}
