package domain

import (
	"time"
)

// MarketQuote is a single commodity price entry on the market board.
type MarketQuote struct {
	Name   string `json:"name"`
	Price  int    `json:"price"`
	Change int    `json:"change"`
	Unit   string `json:"unit,omitempty"`
}

// MarketSnapshot groups current quotes by commodity category.
type MarketSnapshot struct {
	Cereals    []MarketQuote `json:"cereals"`
	Vegetables []MarketQuote `json:"vegetables"`
	Pulses     []MarketQuote `json:"pulses"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
