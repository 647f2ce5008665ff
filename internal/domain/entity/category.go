package entity

import "time"

// Category representa una categoría del catálogo. ImageURL queda vacío hasta que se adjunta una imagen.
type Category struct {
	ID        string
	Name      string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryPatch campos a modificar en una categoría; nil = no tocar.
type CategoryPatch struct {
	Name     *string
	ImageURL *string
}

// Apply copia sobre c los campos presentes en el patch.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ImageURL != nil {
		c.ImageURL = *p.ImageURL
	}
}
