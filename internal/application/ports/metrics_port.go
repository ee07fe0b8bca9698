package ports

// Metrics puerto para contadores de negocio. main inyecta la implementación Prometheus.
type Metrics interface {
	LikeAdded()
	VisitaAdded()
	PhotoStored(store string)
	PhotoDiscarded(store string)
}

// NopMetrics no registra nada.
type NopMetrics struct{}

func (NopMetrics) LikeAdded()            {}
func (NopMetrics) VisitaAdded()          {}
func (NopMetrics) PhotoStored(string)    {}
func (NopMetrics) PhotoDiscarded(string) {}
