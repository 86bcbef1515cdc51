package output

import (
	"encoding/json"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// JSONFormatter emits the full result with the wire field names of the
// domain model. Absent optional fields are omitted, not zeroed.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.LoanAmortization) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
