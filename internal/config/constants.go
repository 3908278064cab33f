package config

// Application constants
const (
	AppName = "AR Interest Processor"

	// Row filter values. Status matching is exact and case-sensitive.
	StatusOverdue       = "Overdue"
	TypeOpeningBalance  = "Customer Opening Balance"

	// Working-days derivation policies.
	PolicyFixed   = "fixed"
	PolicyDynamic = "dynamic"

	// KeySeparator joins key-column values into a composite row key. Chosen
	// to be unlikely to appear inside customer names or transaction numbers.
	KeySeparator = "||"
)

// Input column names. Header names are preserved verbatim from the upstream
// ledger export, including its spelling quirks, for compatibility with
// downstream consumers.
const (
	ColRegion         = "Region"
	ColAreaName       = "Area Name"
	ColMarket         = "Market"
	ColCustomerName   = "Customer Name"
	ColCustomerNumber = "Customer Number"
	ColDate           = "DATE"
	ColTransaction    = "Transaction#"
	ColType           = "Type"
	ColStatus         = "Status"
	ColDueDate        = "Due Date"
	ColAmount         = "Amount"
	ColBalanceDue     = "Balance Due"
	ColAge            = "Age"
)

// Derived column names appended by the transformer.
const (
	ColDueDays            = "Due days"
	ColPreviousInterest   = "Previous interst"
	ColInterestWorking    = "interst working"
	ColPerDayInterest     = "per day interst%"
	ColWorkingInterestPct = "working interst in %"
	ColInterestAmount     = "interest amount"
)

// RequiredInputColumns must all be present on raw input before
// transformation starts.
var RequiredInputColumns = []string{
	ColRegion,
	ColAreaName,
	ColMarket,
	ColCustomerName,
	ColCustomerNumber,
	ColDate,
	ColTransaction,
	ColType,
	ColStatus,
	ColDueDate,
	ColAmount,
	ColBalanceDue,
	ColAge,
}

// ColumnsToDrop are removed from raw data when present. Absence is not an
// error; the upstream export has shipped both spellings.
var ColumnsToDrop = []string{"Sales person", "Sale Person"}

// FinalColumns is the fixed output schema, in order. No other columns leak
// through to the processed table.
var FinalColumns = []string{
	ColRegion,
	ColAreaName,
	ColMarket,
	ColCustomerName,
	ColCustomerNumber,
	ColDate,
	ColTransaction,
	ColType,
	ColStatus,
	ColDueDate,
	ColAmount,
	ColBalanceDue,
	ColAge,
	ColDueDays,
	ColPreviousInterest,
	ColInterestWorking,
	ColPerDayInterest,
	ColWorkingInterestPct,
	ColInterestAmount,
}

// DefaultKeyColumns identify a row when matching processed against expected
// data.
var DefaultKeyColumns = []string{ColCustomerName, ColTransaction}

// DefaultCompareColumns are checked for value drift between matched rows.
var DefaultCompareColumns = []string{ColInterestAmount, ColBalanceDue, ColAge}
