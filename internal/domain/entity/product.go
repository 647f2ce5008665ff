package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// CategoryID es una referencia débil: no se valida al escribir, solo se resuelve al leer.
type Product struct {
	ID         string
	Name       string
	Price      decimal.Decimal
	CategoryID string
	ImageURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductPatch campos a modificar en un producto; nil = no tocar.
type ProductPatch struct {
	Name       *string
	Price      *decimal.Decimal
	CategoryID *string
	ImageURL   *string
}

// Apply copia sobre p los campos presentes en el patch.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.CategoryID != nil {
		p.CategoryID = *pp.CategoryID
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
}

// ProductFilter criterios de listado. CategoryID vacío = sin filtro.
type ProductFilter struct {
	CategoryID string
}

// Matches indica si el producto cumple el filtro (coincidencia exacta de categoría).
func (f ProductFilter) Matches(p *Product) bool {
	return f.CategoryID == "" || p.CategoryID == f.CategoryID
}
