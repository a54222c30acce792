package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/jcroyoaun/compamx/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testFiscalYear mirrors the published 2025 tables so expected values
// in the tests below can be checked against official examples.
func testFiscalYear() *domain.FiscalYear {
	return &domain.FiscalYear{
		Year:             2025,
		UMADaily:         dec("113.14"),
		UMAMonthly:       dec("3439.46"),
		UMAAnnual:        dec("41273.52"),
		MinimumWageDaily: dec("278.80"),
		USDMXNRate:       dec("20.00"),
		ISRBrackets: []domain.ISRBracket{
			{LowerLimit: dec("0.00"), UpperLimit: dec("746.04"), FixedQuota: dec("0.00"), MarginalRate: dec("0.0192")},
			{LowerLimit: dec("746.05"), UpperLimit: dec("6332.05"), FixedQuota: dec("14.32"), MarginalRate: dec("0.0640")},
			{LowerLimit: dec("6332.06"), UpperLimit: dec("11128.01"), FixedQuota: dec("371.83"), MarginalRate: dec("0.1088")},
			{LowerLimit: dec("11128.02"), UpperLimit: dec("12935.82"), FixedQuota: dec("893.63"), MarginalRate: dec("0.1600")},
			{LowerLimit: dec("12935.83"), UpperLimit: dec("15487.71"), FixedQuota: dec("1182.88"), MarginalRate: dec("0.1792")},
			{LowerLimit: dec("15487.72"), UpperLimit: dec("31236.49"), FixedQuota: dec("1640.18"), MarginalRate: dec("0.2136")},
			{LowerLimit: dec("31236.50"), UpperLimit: dec("49233.00"), FixedQuota: dec("5004.12"), MarginalRate: dec("0.2352")},
			{LowerLimit: dec("49233.01"), UpperLimit: dec("93993.90"), FixedQuota: dec("9236.89"), MarginalRate: dec("0.3000")},
			{LowerLimit: dec("93993.91"), UpperLimit: dec("125325.20"), FixedQuota: dec("22665.17"), MarginalRate: dec("0.3200")},
			{LowerLimit: dec("125325.21"), UpperLimit: dec("375975.61"), FixedQuota: dec("32691.18"), MarginalRate: dec("0.3400")},
			{LowerLimit: dec("375975.62"), UpperLimit: dec("999999999.00"), FixedQuota: dec("117912.32"), MarginalRate: dec("0.3500")},
		},
		SubsidyBrackets: []domain.SubsidyBracket{
			{LowerLimit: dec("0.01"), UpperLimit: dec("10171.00"), Credit: dec("474.94")},
		},
		RESICOBrackets: []domain.RESICOBracket{
			{UpperLimit: dec("25000.00"), Rate: dec("0.0100")},
			{UpperLimit: dec("50000.00"), Rate: dec("0.0110")},
			{UpperLimit: dec("83333.33"), Rate: dec("0.0150")},
			{UpperLimit: dec("208333.33"), Rate: dec("0.0200")},
			{UpperLimit: dec("291666.67"), Rate: dec("0.0250")},
		},
		IMSSConcepts: []domain.IMSSConcept{
			{Name: "Prestaciones en dinero", WorkerRate: dec("0.0025"), EmployerRate: dec("0.0070"), BaseCapUMA: dec("25")},
			{Name: "Gastos médicos pensionados", WorkerRate: dec("0.00375"), EmployerRate: dec("0.0105"), BaseCapUMA: dec("25")},
			{Name: "Invalidez y vida", WorkerRate: dec("0.00625"), EmployerRate: dec("0.0175"), BaseCapUMA: dec("25")},
			{Name: "Cesantía y vejez", WorkerRate: dec("0.01125"), EmployerRate: dec("0.0315"), BaseCapUMA: dec("25")},
			{Name: "Retiro", WorkerRate: dec("0"), EmployerRate: dec("0.0200"), BaseCapUMA: dec("25")},
			{Name: "Guarderías", WorkerRate: dec("0"), EmployerRate: dec("0.0100"), BaseCapUMA: dec("25")},
			{Name: "Riesgo de trabajo", WorkerRate: dec("0"), EmployerRate: dec("0.0050"), BaseCapUMA: dec("25")},
		},
		SBCCapUMA:                dec("25"),
		SBCIntegrationFactor:     dec("1.0493"),
		AguinaldoExemptUMA:       dec("30"),
		VacationPremiumExemptUMA: dec("15"),
		PantryVoucherUMACap:      dec("1.0"),
		SavingsFundUMACapFactor:  dec("1.3"),
		SavingsFundMaxPercent:    dec("13"),
		MinAguinaldoDays:         15,
		InfonavitEmployerRate:    dec("0.05"),
	}
}
