package realtime

import (
	"encoding/json"
	"sync"
)

// Tipos de evento de cambio emitidos por los triggers de la base de datos.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Event cambio de fila notificado por PostgreSQL. New y Old traen la fila como
// JSON crudo (Old solo en UPDATE/DELETE, New solo en INSERT/UPDATE).
type Event struct {
	Table string          `json:"table"`
	Type  string          `json:"event"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

// Hub reparte eventos de cambio a los suscriptores en proceso. Cada suscripción
// filtra por tabla; el canal es con buffer y si el consumidor va lento el evento
// se descarta (los consumidores refrescan desde la base, no reconstruyen estado
// desde los eventos, así que perder uno solo retrasa un refetch).
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

// Subscription canal de eventos de una tabla. Cerrar con Close cuando ya no se use.
type Subscription struct {
	hub   *Hub
	table string
	ch    chan Event
	once  sync.Once
}

// NewHub construye un hub vacío.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registra un suscriptor para los cambios de la tabla dada.
// table vacía suscribe a todas las tablas.
func (h *Hub) Subscribe(table string) *Subscription {
	s := &Subscription{hub: h, table: table, ch: make(chan Event, 16)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Publish reparte el evento a todos los suscriptores interesados sin bloquear.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if s.table != "" && s.table != ev.Table {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			// Suscriptor saturado: descartar, el siguiente evento lo despierta igual.
		}
	}
}

// Close cierra el hub y todas las suscripciones vivas.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.subs = make(map[*Subscription]struct{})
	h.mu.Unlock()

	for _, s := range subs {
		s.once.Do(func() { close(s.ch) })
	}
}

// Events canal de lectura de los eventos de la suscripción.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close da de baja la suscripción y cierra su canal.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	_, alive := s.hub.subs[s]
	delete(s.hub.subs, s)
	s.hub.mu.Unlock()
	if alive {
		s.once.Do(func() { close(s.ch) })
	}
}
