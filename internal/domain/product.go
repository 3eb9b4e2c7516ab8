package domain

import (
	"bytes"
	"encoding/json"
)

// Placeholders shown when the record has no usable name or brand
const (
	UnknownProductName = "Unknown Product"
	UnknownBrandName   = "Unknown Brand"
)

// Product is a product record exactly as returned by Open Food Facts.
// Only a handful of fields are read by name; the rest is carried for display.
type Product map[string]any

// Name returns product_name, or UnknownProductName when absent or not text
func (p Product) Name() string {
	return p.stringOr("product_name", UnknownProductName)
}

// Brand returns brands, or UnknownBrandName when absent or not text
func (p Product) Brand() string {
	return p.stringOr("brands", UnknownBrandName)
}

// Allergens returns the allergen declaration, empty when absent
func (p Product) Allergens() string {
	return p.stringOr("allergens", "")
}

// IngredientsText returns the ingredient list, empty when absent
func (p Product) IngredientsText() string {
	return p.stringOr("ingredients_text", "")
}

// PrettyJSON re-encodes the fields with two-space indentation.
// Keys come out sorted; use Record.PrettyJSON to keep the upstream layout.
func (p Product) PrettyJSON() string {
	if p == nil {
		return ""
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

func (p Product) stringOr(field, fallback string) string {
	if v, ok := p[field].(string); ok {
		return v
	}
	return fallback
}

// Record pairs a decoded product with the bytes it was decoded from
type Record struct {
	Product Product
	Raw     json.RawMessage
}

// NewRecord decodes a product object. A JSON null yields ErrProductNotFound.
func NewRecord(raw []byte) (*Record, error) {
	var product Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return &Record{
		Product: product,
		Raw:     append(json.RawMessage(nil), raw...),
	}, nil
}

// PrettyJSON indents the record as received, keeping key order and number text
func (r *Record) PrettyJSON() string {
	if r == nil || r.Product == nil {
		return ""
	}
	if len(r.Raw) == 0 {
		return r.Product.PrettyJSON()
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Raw, "", "  "); err != nil {
		return r.Product.PrettyJSON()
	}
	return buf.String()
}
