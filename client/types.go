package client

import (
	"encoding/json"
	"strconv"
	"time"
)

// ID is an opaque record identifier. The service historically returned
// identifiers both as JSON numbers and as JSON strings; both decode into the
// same value, and numeric identifiers are sent back on the wire as numbers.
type ID string

// IsZero reports whether the identifier is absent.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits the identifier as a JSON number when it round-trips as
// an unsigned integer, matching what the service stores, and as a string
// otherwise.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseUint(string(id), 10, 64); err == nil && strconv.FormatUint(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Part is the view-side representation of a spare part. StockLevel and
// MinStockLevel always carry a value after decoding, defaulting to zero when
// the response omitted them.
type Part struct {
	ID            ID      `json:"id"`
	Name          string  `json:"name"`
	PartNumber    string  `json:"partNumber"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockLevel    int     `json:"stockLevel"`
	MinStockLevel int     `json:"minStockLevel"`
	SupplierID    ID      `json:"supplier_id,omitempty"`
	SupplierName  string  `json:"supplier,omitempty"`
}

// Supplier is the view-side representation of a supplier.
type Supplier struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// SupplierStatusDisplay is the constant the supplier views render in their
// status column. No status field is persisted; every supplier displays as
// active.
const SupplierStatusDisplay = "Active"

// PageInfo is the pagination descriptor carried by enveloped list responses.
type PageInfo struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
}

// UsageRecord is one row of the aggregated parts usage report.
type UsageRecord struct {
	PartID     ID        `json:"part_id"`
	Name       string    `json:"name"`
	PartNumber string    `json:"part_number"`
	TotalUsed  int       `json:"total_used"`
	LastUsedAt time.Time `json:"last_used_at"`
}
