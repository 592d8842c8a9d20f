package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Feed is the decoded product catalog document of one storefront. A document
// without a "products" key decodes to an empty product list.
type Feed struct {
	Products []Product `json:"products"`
}

// Product and Variant keep every feed field optional; presence is decided at
// normalization or insert time, not at decode time.
type Product struct {
	ID          *int64    `json:"id"`
	Title       *string   `json:"title"`
	BodyHTML    *string   `json:"body_html"`
	Vendor      *string   `json:"vendor"`
	ProductType *string   `json:"product_type"`
	Variants    []Variant `json:"variants"`
}

type Variant struct {
	ID        *int64  `json:"id"`
	Title     *string `json:"title"`
	Option1   *string `json:"option1"`
	Option2   *string `json:"option2"`
	Option3   *string `json:"option3"`
	Available *bool   `json:"available"`
	Price     *Price  `json:"price"`
}

// Price carries the feed's price verbatim. Storefront feeds emit either a
// JSON string ("19.99") or a bare number; no currency normalization happens.
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(n.String())
	return nil
}

func (p Price) Float64() (float64, error) {
	return strconv.ParseFloat(string(p), 64)
}

// Record is one flattened per-variant observation, ready for the store.
type Record struct {
	ProductTitle string
	ProductID    *int64
	Description  string
	Vendor       *string
	Category     *string

	VariantTitle string
	Option1      *string
	Option2      *string
	Option3      *string
	Available    *bool
	Price        *Price
	VariantID    *int64

	ObservedAt time.Time
}
