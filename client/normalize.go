package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList reconciles the two response shapes the list endpoints produce.
// A bare JSON array is the legacy shape: its items are returned verbatim
// with a nil PageInfo, and the caller must treat them as page 1 of 1.
// Anything else is treated as an envelope keyed by the collection name, with
// an optional "pagination" descriptor. A missing or null collection key
// yields an empty slice, never nil.
func decodeList[T any](data []byte, key string) ([]T, *PageInfo, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		items := []T{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, nil, fmt.Errorf("decode %s list: %w", key, err)
		}
		return items, nil, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, nil, fmt.Errorf("decode %s envelope: %w", key, err)
	}

	items := []T{}
	if raw, ok := envelope[key]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, nil, fmt.Errorf("decode %s items: %w", key, err)
		}
	}

	var info *PageInfo
	if raw, ok := envelope["pagination"]; ok && string(raw) != "null" {
		info = new(PageInfo)
		if err := json.Unmarshal(raw, info); err != nil {
			return nil, nil, fmt.Errorf("decode %s pagination: %w", key, err)
		}
	}

	return items, info, nil
}

// UnmarshalJSON remaps wire field names onto the view-side shape. Canonical
// wire names (part_number, quantity, reorder_level) win; the view-side names
// act as fallbacks, so decoding an already-remapped record is a no-op.
// Numeric fields default to zero when absent in both shapes.
func (p *Part) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            ID       `json:"id"`
		Name          string   `json:"name"`
		PartNumber    *string  `json:"part_number"`
		PartNumberAlt *string  `json:"partNumber"`
		Description   string   `json:"description"`
		Price         *float64 `json:"price"`
		Quantity      *int     `json:"quantity"`
		StockLevel    *int     `json:"stockLevel"`
		ReorderLevel  *int     `json:"reorder_level"`
		MinStockLevel *int     `json:"minStockLevel"`
		SupplierID    ID       `json:"supplier_id"`
		SupplierName  string   `json:"supplier"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ID = raw.ID
	p.Name = raw.Name
	p.Description = raw.Description
	p.SupplierID = raw.SupplierID
	p.SupplierName = raw.SupplierName

	switch {
	case raw.PartNumber != nil:
		p.PartNumber = *raw.PartNumber
	case raw.PartNumberAlt != nil:
		p.PartNumber = *raw.PartNumberAlt
	default:
		p.PartNumber = ""
	}

	if raw.Price != nil {
		p.Price = *raw.Price
	} else {
		p.Price = 0
	}

	switch {
	case raw.Quantity != nil:
		p.StockLevel = *raw.Quantity
	case raw.StockLevel != nil:
		p.StockLevel = *raw.StockLevel
	default:
		p.StockLevel = 0
	}

	switch {
	case raw.ReorderLevel != nil:
		p.MinStockLevel = *raw.ReorderLevel
	case raw.MinStockLevel != nil:
		p.MinStockLevel = *raw.MinStockLevel
	default:
		p.MinStockLevel = 0
	}

	return nil
}

// UnmarshalJSON remaps the supplier wire shape: contact_person wins over
// contactPerson, defaulting to empty.
func (s *Supplier) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID               ID      `json:"id"`
		Name             string  `json:"name"`
		ContactPerson    *string `json:"contact_person"`
		ContactPersonAlt *string `json:"contactPerson"`
		Email            string  `json:"email"`
		Phone            string  `json:"phone"`
		Address          string  `json:"address"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.ID = raw.ID
	s.Name = raw.Name
	s.Email = raw.Email
	s.Phone = raw.Phone
	s.Address = raw.Address

	switch {
	case raw.ContactPerson != nil:
		s.ContactPerson = *raw.ContactPerson
	case raw.ContactPersonAlt != nil:
		s.ContactPerson = *raw.ContactPersonAlt
	default:
		s.ContactPerson = ""
	}

	return nil
}
