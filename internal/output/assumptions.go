package output

// DefaultAssumptions lists the modeling conventions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Contributions and lump sums are invested at the start of each month",
	"Returns compound monthly at the annual rate divided by 12",
	"Step-up, inflation indexing and variable returns change once per year",
	"Expense ratio is charged monthly at the annual rate divided by 12",
	"Yearly withdrawals are taken in month 12; tax applies to the gains fraction only",
	"Inflation-adjusted values are deflated by a CPI that starts at 100",
}
