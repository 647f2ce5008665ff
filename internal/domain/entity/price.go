package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Price decimal que se serializa con la escala con la que se parseó: "9.90" sigue siendo "9.90".
// decimal.Decimal.String recorta los ceros a la derecha.
type Price struct {
	decimal.Decimal
}

// NewPrice envuelve d.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// String representación textual conservando los decimales.
func (p Price) String() string {
	if exp := p.Exponent(); exp < 0 {
		return p.StringFixed(-exp)
	}
	return p.Decimal.String()
}

// MarshalJSON serializa como string JSON, igual que decimal.Decimal pero sin perder escala.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON acepta string o número JSON.
func (p *Price) UnmarshalJSON(data []byte) error {
	return p.Decimal.UnmarshalJSON(data)
}
