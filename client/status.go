package client

// StockStatus is the three-level classification of a part's stock level
// against its reorder threshold.
type StockStatus string

const (
	StockLow     StockStatus = "LOW"
	StockWarning StockStatus = "WARNING"
	StockOK      StockStatus = "OK"
)

// Classify computes the stock status for a stock level and a minimum stock
// level. At or below the minimum is LOW; at or below 1.5 times the minimum
// is WARNING (the boundary itself classifies as WARNING, not OK); anything
// above is OK. With a zero minimum, zero stock is LOW and any positive
// stock is OK.
func Classify(stockLevel, minStockLevel int) StockStatus {
	switch {
	case stockLevel <= minStockLevel:
		return StockLow
	case float64(stockLevel) <= float64(minStockLevel)*1.5:
		return StockWarning
	default:
		return StockOK
	}
}

// Status classifies the part's current stock level.
func (p Part) Status() StockStatus {
	return Classify(p.StockLevel, p.MinStockLevel)
}
