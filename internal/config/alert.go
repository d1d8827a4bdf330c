package config

// Alert configures the low-stock evaluation.
type Alert struct {
	// StockThreshold is the stock level at or below which a product
	// is considered low on stock.
	StockThreshold int `env:"STOCK_ALERT_THRESHOLD" envDefault:"10"`
}
