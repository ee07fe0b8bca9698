package entity

import "time"

// Comentario publicado sobre un comercio. Este servicio solo lo lee.
type Comentario struct {
	ID         int64
	ComercioID int64
	Autor      string
	Texto      string
	Fecha      time.Time
}
