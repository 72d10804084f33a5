package entity

import "time"

// Estados de una solicitud de reposición. Una solicitud está "abierta"
// mientras sea pending o acknowledged; a lo sumo puede existir una abierta
// por variante (índice único parcial en la tabla).
const (
	RestockStatusPending      = "pending"
	RestockStatusAcknowledged = "acknowledged"
	RestockStatusFulfilled    = "fulfilled"
)

// Prioridades de reposición según la política de reorden.
const (
	RestockPriorityCritical = "critical"
	RestockPriorityUrgent   = "urgent"
)

// RestockingRequest solicitud de reposición generada por la política de
// reorden tras una venta que deja la variante bajo su nivel de reposición.
type RestockingRequest struct {
	ID           string
	VariantID    string
	VariantName  string
	CurrentQty   int64
	ReorderPoint int64
	SuggestedQty int64
	Priority     string // critical, urgent
	Status       string // pending, acknowledged, fulfilled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOpen indica si la solicitud sigue abierta (pending o acknowledged).
func (r *RestockingRequest) IsOpen() bool {
	return r.Status == RestockStatusPending || r.Status == RestockStatusAcknowledged
}
