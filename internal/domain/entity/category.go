package entity

// Category agrupa productos (frenos, filtros, suspensión, etc.).
type Category struct {
	ID   string
	Name string // único
}
