package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barhaim/arkgo/internal/ecs/signal"
)

func TestSink_PublishCallsEveryHandlerInOrder(t *testing.T) {
	s := signal.NewSink[int]()
	var order []int

	s.Connect(func(v int) { order = append(order, v*10) })
	s.Connect(func(v int) { order = append(order, v*100) })

	s.Publish(1)
	assert.Equal(t, []int{10, 100}, order)
}

func TestSink_DisconnectStopsDelivery(t *testing.T) {
	s := signal.NewSink[int]()
	var calls int
	conn := s.Connect(func(int) { calls++ })

	s.Publish(1)
	conn.Disconnect()
	s.Publish(1)

	assert.Equal(t, 1, calls)
}

func TestSink_DisconnectDuringPublishIsDeferred(t *testing.T) {
	s := signal.NewSink[int]()
	var firstCalls, secondCalls int
	var conn signal.Connection

	conn = s.Connect(func(int) {
		firstCalls++
		// A handler disconnecting itself mid-publish must not perturb this
		// same publish's iteration over the handler list.
		conn.Disconnect()
	})
	s.Connect(func(int) { secondCalls++ })

	s.Publish(1)
	assert.Equal(t, 1, secondCalls, "second handler still runs on the publish where the first disconnected")

	s.Publish(1)
	assert.Equal(t, 1, firstCalls, "first handler must be gone by the next publish")
}

func TestScopedConnection_DisconnectsOnRelease(t *testing.T) {
	s := signal.NewSink[int]()
	var calls int

	sc := signal.NewScopedConnection(s.Connect(func(int) { calls++ }))
	s.Publish(1)
	sc.Release()
	s.Publish(1)

	assert.Equal(t, 1, calls)
}

func TestSink_PublishWithNoHandlers(t *testing.T) {
	s := signal.NewSink[string]()
	assert.NotPanics(t, func() { s.Publish("x") })
}

func TestSink_ReentrantPublishDuringPublish(t *testing.T) {
	s := signal.NewSink[int]()
	var inner int

	s.Connect(func(v int) {
		if v == 1 {
			inner = 0
			s.Publish(2)
		} else {
			inner = v
		}
	})

	s.Publish(1)
	assert.Equal(t, 2, inner)
}
