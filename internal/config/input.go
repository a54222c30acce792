package config

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jcroyoaun/compamx/internal/domain"
)

// Request is the top-level document submitted for comparison.
type Request struct {
	Packages []domain.PackageInput `yaml:"packages" json:"packages"`
}

// InputParser handles parsing of package request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a comparison request from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.parse(data)
}

// LoadFromReader loads a comparison request from a reader
func (ip *InputParser) LoadFromReader(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ip.parse(data)
}

func (ip *InputParser) parse(data []byte) (*Request, error) {
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidateRequest checks every package for well-formed fields and
// regime-compatible elections before anything is calculated.
func (ip *InputParser) ValidateRequest(req *Request) error {
	if len(req.Packages) == 0 {
		return domain.NewInputError("packages", "at least one package is required")
	}

	seen := make(map[string]bool, len(req.Packages))
	for i := range req.Packages {
		pkg := &req.Packages[i]
		if err := ip.validatePackage(pkg); err != nil {
			return fmt.Errorf("package %d (%s): %w", i+1, pkg.Name, err)
		}
		if seen[pkg.Name] {
			return domain.NewInputError("name", "duplicate package name: "+pkg.Name)
		}
		seen[pkg.Name] = true
	}
	return nil
}

func (ip *InputParser) validatePackage(pkg *domain.PackageInput) error {
	if pkg.Name == "" {
		return domain.NewInputError("name", "is required")
	}

	switch pkg.Regime {
	case domain.RegimePayroll, domain.RegimeSimplified:
	default:
		return domain.NewInputError("regime",
			fmt.Sprintf("must be %q or %q", domain.RegimePayroll, domain.RegimeSimplified))
	}

	switch pkg.Currency {
	case domain.CurrencyMXN, domain.CurrencyUSD:
	default:
		return domain.NewInputError("currency", "must be MXN or USD")
	}

	switch pkg.PayFrequency {
	case domain.FrequencyHourly:
		if pkg.HoursPerWeek == nil || pkg.HoursPerWeek.LessThanOrEqual(decimal.Zero) {
			return domain.NewInputError("hours_per_week", "required and positive for hourly pay")
		}
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyBiweekly, domain.FrequencyMonthly:
	default:
		return domain.NewInputError("pay_frequency",
			"must be hourly, daily, weekly, biweekly or monthly")
	}

	if pkg.GrossSalary.LessThanOrEqual(decimal.Zero) {
		return domain.NewInputError("gross_salary", "must be positive")
	}
	if pkg.ExchangeRate != nil && pkg.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return domain.NewInputError("exchange_rate", "must be positive when set")
	}
	if pkg.UnpaidRestDays < 0 {
		return domain.NewInputError("unpaid_rest_days", "cannot be negative")
	}

	switch pkg.Regime {
	case domain.RegimeSimplified:
		if pkg.HasPayrollOnlyBenefits() {
			return domain.NewCombinationError("regime",
				"statutory benefits are not available under the simplified regime")
		}
	case domain.RegimePayroll:
		if pkg.UnpaidRestDays > 0 {
			return domain.NewCombinationError("unpaid_rest_days",
				"payroll workers are paid for rest days")
		}
	}
	return nil
}
