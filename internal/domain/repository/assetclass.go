package repository

// AssetClass identifies one of the supported instrument classes.
type AssetClass string

const (
	ClassCrypto AssetClass = "crypto"
	ClassStocks AssetClass = "stocks"
	ClassBonds  AssetClass = "bonds"
)

// IsValidClass returns true if c is a supported asset class.
func IsValidClass(c AssetClass) bool {
	switch c {
	case ClassCrypto, ClassStocks, ClassBonds:
		return true
	default:
		return false
	}
}

// AllClasses returns the supported classes in presentation order.
func AllClasses() []AssetClass {
	return []AssetClass{ClassCrypto, ClassStocks, ClassBonds}
}

// NormalizeClass converts a raw string to a valid class (or empty).
func NormalizeClass(s string) AssetClass {
	c := AssetClass(s)
	if IsValidClass(c) {
		return c
	}
	return ""
}
