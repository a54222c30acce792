package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/jcroyoaun/compamx/internal/compare"
)

// CSVFormatter renders a comparison as CSV, one row per package
type CSVFormatter struct{}

// Format generates CSV output for a comparison
func (cf *CSVFormatter) Format(set *compare.ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Package",
		"Best",
		"Monthly Gross",
		"ISR",
		"Subsidy",
		"IMSS Worker",
		"Monthly Net",
		"Yearly Gross",
		"Yearly Net",
		"Monthly Adjusted",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i, result := range set.Results {
		if err := writer.Write(cf.formatRow(result, i == set.BestIndex)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result compare.PackageResult, best bool) []string {
	c := result.Calculation
	return []string{
		result.Name,
		strconv.FormatBool(best),
		c.GrossSalary.StringFixed(2),
		c.ISRTax.StringFixed(2),
		c.SubsidyCredit.StringFixed(2),
		c.IMSSWorker.StringFixed(2),
		c.NetSalary.StringFixed(2),
		c.YearlyGross.StringFixed(2),
		c.YearlyNet.StringFixed(2),
		c.MonthlyAdjusted.StringFixed(2),
	}
}
