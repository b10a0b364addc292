package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recibir(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("no llegó ningún evento")
		return Event{}
	}
}

func TestHub_FiltraPorTabla(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	productos := hub.Subscribe("products")
	defer productos.Close()
	avisos := hub.Subscribe("announcements")
	defer avisos.Close()

	hub.Publish(Event{Table: "products", Type: EventInsert, New: json.RawMessage(`{"id":1}`)})

	ev := recibir(t, productos)
	assert.Equal(t, "products", ev.Table)
	assert.Equal(t, EventInsert, ev.Type)

	select {
	case ev := <-avisos.Events():
		t.Fatalf("la suscripción a announcements no debía recibir %q", ev.Table)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_TablaVaciaRecibeTodo(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	todo := hub.Subscribe("")
	defer todo.Close()

	hub.Publish(Event{Table: "products", Type: EventUpdate})
	hub.Publish(Event{Table: "orders", Type: EventDelete})

	assert.Equal(t, "products", recibir(t, todo).Table)
	assert.Equal(t, "orders", recibir(t, todo).Table)
}

func TestHub_SuscriptorLentoNoBloquea(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	lento := hub.Subscribe("products")
	defer lento.Close()

	// Saturar el buffer: Publish nunca debe bloquear aunque nadie consuma.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Table: "products", Type: EventInsert})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish se bloqueó con un suscriptor saturado")
	}
}

func TestSubscription_CloseCierraElCanal(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe("products")
	sub.Close()
	sub.Close() // doble Close es inocuo

	_, abierto := <-sub.Events()
	assert.False(t, abierto, "el canal queda cerrado tras Close")

	// Publicar tras la baja no debe entregar nada ni entrar en pánico.
	hub.Publish(Event{Table: "products", Type: EventInsert})
}

func TestHub_CloseCierraTodasLasSuscripciones(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("products")
	b := hub.Subscribe("")

	hub.Close()

	_, abiertoA := <-a.Events()
	_, abiertoB := <-b.Events()
	require.False(t, abiertoA)
	require.False(t, abiertoB)

	// Close de suscripción tras el del hub tampoco entra en pánico.
	a.Close()
}
