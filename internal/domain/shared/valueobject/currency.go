package valueobject

// Currency represents a currency code
type Currency string

const (
	SYP Currency = "SYP" // Syrian Pound (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	TRY Currency = "TRY" // Turkish Lira
	SAR Currency = "SAR" // Saudi Riyal
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = SYP

// IsValid checks if the currency is one of the accepted transfer currencies
func (c Currency) IsValid() bool {
	switch c {
	case SYP, USD, EUR, TRY, SAR:
		return true
	}
	return false
}

// IsLedgerCurrency reports whether the branch ledger tracks a dedicated
// balance for this currency. Only SYP and USD have their own balance columns.
func (c Currency) IsLedgerCurrency() bool {
	return c == SYP || c == USD
}

// BalanceCurrency maps a transfer currency to the ledger balance it settles
// against. USD settles against the USD balance; every other accepted currency
// falls back to the SYP balance, preserving the behavior legacy callers rely on.
func (c Currency) BalanceCurrency() Currency {
	if c == USD {
		return USD
	}
	return SYP
}

// String returns the string representation of the currency
func (c Currency) String() string {
	return string(c)
}
