package config

// DefaultStockSymbols is the default equity universe scanned when no explicit
// symbol list is configured.
var DefaultStockSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "NVDA", "JPM",
	"V", "WMT", "PG", "JNJ", "MA", "DIS", "HD", "BAC", "NFLX",
	"ADBE", "PYPL", "CMCSA", "NKE", "XOM", "VZ", "CSCO", "PFE",
	"INTC", "T", "MRK", "ABT", "COST", "AVGO", "TMO", "ACN", "QCOM",
	"CVX", "DHR", "WFC", "LIN", "BMY", "AMGN", "HON", "AMAT", "AMD",
	"LOW", "RTX", "UNH", "INTU", "DE", "UBER", "SPOT", "ROKU",
}
