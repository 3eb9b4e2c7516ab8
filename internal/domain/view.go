package domain

import "encoding/json"

// View is the state of the lookup page. Everything shown besides the input
// text is derived from the product record and the not-found flag.
// Raw holds the record bytes as received and only feeds the JSON dump.
type View struct {
	Barcode  string
	Product  Product
	Raw      json.RawMessage
	NotFound bool
}

// EmptyView is the state before any lookup
func EmptyView() View {
	return View{}
}

// NotFoundView is the state after an unsuccessful lookup
func NotFoundView(barcode string) View {
	return View{Barcode: barcode, NotFound: true}
}

// ResultView is the state after a successful lookup
func ResultView(barcode string, record *Record) View {
	if record == nil || record.Product == nil {
		return NotFoundView(barcode)
	}
	return View{Barcode: barcode, Product: record.Product, Raw: record.Raw}
}

// Clear resets the view to its initial state
func (v View) Clear() View {
	return EmptyView()
}

// Outcome derives the classification for the view
func (v View) Outcome() Outcome {
	switch {
	case v.NotFound:
		return OutcomeNotFound
	case v.Product == nil:
		return OutcomeEmpty
	case ContainsSoy(v.Product):
		return OutcomeContainsSoy
	default:
		return OutcomeNoSoy
	}
}

// HasProduct reports whether a product record is being shown
func (v View) HasProduct() bool {
	return !v.NotFound && v.Product != nil
}

// Message returns the outcome message, empty before any lookup
func (v View) Message() string {
	return v.Outcome().Message()
}

// Background returns the page background color
func (v View) Background() string {
	return v.Outcome().Background()
}

// ProductName returns the display name, empty when no product is shown
func (v View) ProductName() string {
	if !v.HasProduct() {
		return ""
	}
	return v.Product.Name()
}

// BrandName returns the display brand, empty when no product is shown
func (v View) BrandName() string {
	if !v.HasProduct() {
		return ""
	}
	return v.Product.Brand()
}

// RawJSON returns the indented product record, empty when no product is shown
func (v View) RawJSON() string {
	if !v.HasProduct() {
		return ""
	}
	record := Record{Product: v.Product, Raw: v.Raw}
	return record.PrettyJSON()
}

// CheckResult is the JSON form of a view returned by the API
type CheckResult struct {
	Barcode     string  `json:"barcode"`
	Outcome     Outcome `json:"outcome"`
	ContainsSoy bool    `json:"containsSoy"`
	ProductName string  `json:"productName,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Message     string  `json:"message"`
	Background  string  `json:"background"`
	Product     Product `json:"product,omitempty"`
}

// Result converts the view into its API representation
func (v View) Result() CheckResult {
	outcome := v.Outcome()
	result := CheckResult{
		Barcode:     v.Barcode,
		Outcome:     outcome,
		ContainsSoy: outcome == OutcomeContainsSoy,
		ProductName: v.ProductName(),
		Brand:       v.BrandName(),
		Message:     outcome.Message(),
		Background:  outcome.Background(),
	}
	if v.HasProduct() {
		result.Product = v.Product
	}
	return result
}
