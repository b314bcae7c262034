package constants

const (
	// Transaction Types
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
	TypeDispute    = "dispute"
	TypeResolve    = "resolve"
	TypeChargeback = "chargeback"

	// Output
	DefaultPrecision = 4

	// Date Layout
	DateFormat = "2006-01-02 15:04"
)
