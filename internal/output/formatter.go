package output

import (
	"fmt"

	"github.com/jcroyoaun/compamx/internal/compare"
)

// Formatter renders a comparison set for one output medium.
type Formatter interface {
	Format(set *compare.ComparisonSet) (string, error)
}

// ByName returns the formatter for a CLI format flag value.
func ByName(name string) (Formatter, error) {
	switch name {
	case "table", "":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{Pretty: true}, nil
	case "csv":
		return &CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json or csv)", name)
	}
}
