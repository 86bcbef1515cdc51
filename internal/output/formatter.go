package output

import (
	"fmt"

	"github.com/josecaster/loan-amortization-calculator/internal/domain"
)

// Formatter renders an amortization schedule into a byte payload.
type Formatter interface {
	Name() string
	Format(result *domain.LoanAmortization) ([]byte, error)
}

// NewFormatter returns the formatter registered under the given name.
// An empty name selects the console formatter.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", "console":
		return ConsoleFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected console, csv or json)", name)
	}
}
