package domain

// Mismatch types reported by detailed key reconciliation.
const (
	MismatchExtraInProcessed   = "Extra in Processed"
	MismatchMissingInProcessed = "Missing in Processed"
)

// NotAvailable marks a field that is absent on the source row, and a
// difference that cannot be computed numerically.
const NotAvailable = "N/A"

// RowComparison holds row counts for both tables and their signed difference
// (processed minus expected).
type RowComparison struct {
	ProcessedRows int `json:"processed_rows" csv:"ProcessedRows"`
	ExpectedRows  int `json:"expected_rows" csv:"ExpectedRows"`
	Difference    int `json:"difference" csv:"Difference"`
}

// ColumnComparison describes how the column schemas of the two tables relate.
type ColumnComparison struct {
	ProcessedColumns   []string `json:"processed_columns"`
	ExpectedColumns    []string `json:"expected_columns"`
	ExtraInProcessed   []string `json:"extra_in_processed"`
	MissingInProcessed []string `json:"missing_in_processed"`
	ColumnsMatch       bool     `json:"columns_match"`
}

// CustomerSetDiff lists customer names present on only one side. Computed is
// false when either table lacks a Customer Name column; the slices are nil in
// that case.
type CustomerSetDiff struct {
	Computed           bool     `json:"computed"`
	ExtraInProcessed   []string `json:"extra_in_processed,omitempty"`
	MissingInProcessed []string `json:"missing_in_processed,omitempty"`
}

// ShapeReport is the structural comparison of two tables.
type ShapeReport struct {
	Rows      RowComparison    `json:"row_comparison"`
	Columns   ColumnComparison `json:"column_comparison"`
	Customers CustomerSetDiff  `json:"customer_comparison"`
}

// MismatchRecord reports a composite key present on only one side. Fields
// absent from the source row carry NotAvailable.
type MismatchRecord struct {
	MismatchType   string `json:"mismatch_type" csv:"Mismatch Type"`
	CustomerName   string `json:"customer_name" csv:"Customer Name"`
	TransactionID  string `json:"transaction_id" csv:"Transaction#"`
	Type           string `json:"type" csv:"Type"`
	Age            string `json:"age" csv:"Age"`
	BalanceDue     string `json:"balance_due" csv:"Balance Due"`
	InterestAmount string `json:"interest_amount" csv:"Interest Amount"`
}

// ValueDiff reports a per-column value drift between two rows sharing a
// composite key. Difference is the signed processed-minus-expected value
// rounded to four decimals, or NotAvailable for non-numeric comparisons.
type ValueDiff struct {
	CustomerName   string `json:"customer_name" csv:"Customer Name"`
	TransactionID  string `json:"transaction_id" csv:"Transaction#"`
	Column         string `json:"column" csv:"Column"`
	ProcessedValue string `json:"processed_value" csv:"Processed Value"`
	ExpectedValue  string `json:"expected_value" csv:"Expected Value"`
	Difference     string `json:"difference" csv:"Difference"`
}

// SummaryReport condenses a full reconciliation run into headline figures.
type SummaryReport struct {
	RunID                  string `json:"run_id"`
	ProcessedRows          int    `json:"processed_rows"`
	ExpectedRows           int    `json:"expected_rows"`
	RowDifference          int    `json:"row_difference"`
	ColumnsMatch           bool   `json:"columns_match"`
	ExtraCustomers         int    `json:"extra_customers"`
	MissingCustomers       int    `json:"missing_customers"`
	ProcessedTotalInterest string `json:"processed_total_interest,omitempty"`
	ExpectedTotalInterest  string `json:"expected_total_interest,omitempty"`
}
