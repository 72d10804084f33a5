package entity

import "time"

// Product es el registro maestro de catálogo de la ferretería.
// Identidad inmutable: se crea desde gestión de catálogo, rara vez se edita
// y nunca se elimina mientras existan variantes que lo referencien.
type Product struct {
	ID          string
	Name        string
	Category    string
	Brand       string
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
