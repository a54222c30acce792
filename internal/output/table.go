package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/compare"
	"github.com/jcroyoaun/compamx/internal/domain"
)

// TableFormatter renders a comparison as a console table
type TableFormatter struct{}

// Format generates the table plus a per-package breakdown
func (tf *TableFormatter) Format(set *compare.ComparisonSet) (string, error) {
	var sb strings.Builder

	sb.WriteString("COMPENSATION PACKAGE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 84) + "\n")
	sb.WriteString(fmt.Sprintf("Fiscal Year: %d    UMA (monthly): $%s    USD/MXN: %s\n",
		set.Meta.Year, tf.money(set.Meta.UMAMonthly), set.Meta.USDMXNRate.StringFixed(2)))
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Package",
		numWidth, "Monthly Gross",
		numWidth, "Monthly Net",
		numWidth, "Yearly Net",
		numWidth, "Adjusted/Mo"))
	sb.WriteString(strings.Repeat("-", 84) + "\n")

	for i, result := range set.Results {
		name := result.Name
		if i == set.BestIndex {
			name += " *"
		}
		c := result.Calculation
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
			nameWidth, name,
			numWidth, tf.money(c.GrossSalary),
			numWidth, tf.money(c.NetSalary),
			numWidth, tf.money(c.YearlyNet),
			numWidth, tf.money(c.MonthlyAdjusted)))
	}
	sb.WriteString(strings.Repeat("=", 84) + "\n")
	sb.WriteString(fmt.Sprintf("* Best package by adjusted monthly net: %s\n", set.Best().Name))

	for _, result := range set.Results {
		tf.writeBreakdown(&sb, result)
	}

	return sb.String(), nil
}

func (tf *TableFormatter) writeBreakdown(sb *strings.Builder, result compare.PackageResult) {
	c := result.Calculation

	sb.WriteString(fmt.Sprintf("\n%s:\n", result.Name))
	sb.WriteString(fmt.Sprintf("  ISR withheld:       $%s\n", tf.money(c.ISRTax)))
	if c.SubsidyCredit.IsPositive() {
		sb.WriteString(fmt.Sprintf("  Employment subsidy: $%s\n", tf.money(c.SubsidyCredit)))
	}
	if c.IMSSWorker.IsPositive() {
		sb.WriteString(fmt.Sprintf("  IMSS (worker):      $%s on SBC $%s/day\n",
			tf.money(c.IMSSWorker), tf.money(c.SBC)))
	}
	if c.Aguinaldo.Gross.IsPositive() {
		sb.WriteString(fmt.Sprintf("  Aguinaldo:          $%s gross, $%s net\n",
			tf.money(c.Aguinaldo.Gross), tf.money(c.Aguinaldo.Net)))
	}
	if c.VacationPremium.Gross.IsPositive() {
		sb.WriteString(fmt.Sprintf("  Vacation premium:   $%s gross, $%s net\n",
			tf.money(c.VacationPremium.Gross), tf.money(c.VacationPremium.Net)))
	}
	if c.PantryVouchers.Gross.IsPositive() {
		sb.WriteString(fmt.Sprintf("  Pantry vouchers:    $%s/mo, $%s net\n",
			tf.money(c.PantryVouchers.Gross), tf.money(c.PantryVouchers.Net)))
	}
	if c.SavingsFundPayout.IsPositive() {
		sb.WriteString(fmt.Sprintf("  Savings fund:       $%s/mo deducted, $%s year-end payout\n",
			tf.money(c.SavingsFundMonthly), tf.money(c.SavingsFundPayout)))
	}
	for _, b := range c.OtherBenefits {
		cadence := "/mo"
		if b.Cadence == domain.CadenceAnnual {
			cadence = "/yr"
		}
		sb.WriteString(fmt.Sprintf("  %-19s $%s%s, $%s net\n",
			b.Name+":", tf.money(b.Amount), cadence, tf.money(b.Net)))
	}
	if c.IMSSEmployerAnnual.IsPositive() {
		sb.WriteString(fmt.Sprintf("  Employer cost:      $%s/yr IMSS", tf.money(c.IMSSEmployerAnnual)))
		if c.InfonavitEmployerAnnual.IsPositive() {
			sb.WriteString(fmt.Sprintf(" + $%s/yr Infonavit", tf.money(c.InfonavitEmployerAnnual)))
		}
		sb.WriteString(" (not part of take-home)\n")
	}
	if c.UnpaidRestDays > 0 {
		sb.WriteString(fmt.Sprintf("  Unpaid rest days:   %d days, -$%s/yr\n",
			c.UnpaidRestDays, tf.money(c.UnpaidRestDayLoss)))
	}
	if c.Equity != nil {
		sb.WriteString("  Equity vesting (USD, informational):\n")
		for _, vest := range c.Equity.Schedule {
			if vest.TotalMinUSD.Equal(vest.TotalMaxUSD) {
				sb.WriteString(fmt.Sprintf("    Year %d: $%s\n", vest.Year, tf.money(vest.TotalMinUSD)))
			} else {
				sb.WriteString(fmt.Sprintf("    Year %d: $%s - $%s\n",
					vest.Year, tf.money(vest.TotalMinUSD), tf.money(vest.TotalMaxUSD)))
			}
		}
	}
}

// money renders a decimal with thousands separators and two decimals.
func (tf *TableFormatter) money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var out strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	result := out.String() + "." + parts[1]
	if neg {
		result = "-" + result
	}
	return result
}
