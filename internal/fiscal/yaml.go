package fiscal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// LoadFile reads and validates a fiscal-year snapshot from a YAML file.
func LoadFile(path string) (*domain.FiscalYear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fiscal file %s: %w", path, err)
	}

	var fy domain.FiscalYear
	if err := yaml.Unmarshal(data, &fy); err != nil {
		return nil, fmt.Errorf("failed to parse fiscal file %s: %w", path, err)
	}
	if err := fy.Validate(); err != nil {
		return nil, err
	}
	return &fy, nil
}
