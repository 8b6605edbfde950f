package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/shared"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

type panicHandler struct{}

func (panicHandler) EventTypes() []string { return []string{"Boom"} }
func (panicHandler) Handle(context.Context, shared.DomainEvent) error {
	panic("handler bug")
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	settled := testutil.NewMockEventHandler("InvestmentSettled")
	all := testutil.NewMockEventHandler()
	bus.Subscribe(settled)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(ctx,
		testutil.NewTestEvent("InvestmentSettled"),
		testutil.NewTestEvent("PropertyCreated"),
	))

	assert.Equal(t, 1, settled.HandledCount())
	assert.Equal(t, 2, all.HandledCount())

	published, failed := bus.Stats()
	assert.Equal(t, int64(2), published)
	assert.Zero(t, failed)
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := testutil.NewMockEventHandler("A")
	bus.Subscribe(h, "B")

	require.NoError(t, bus.Publish(context.Background(), testutil.NewTestEvent("A"), testutil.NewTestEvent("B")))

	require.Equal(t, 1, h.HandledCount())
	assert.Equal(t, "B", h.Handled()[0].EventType())
}

func TestInMemoryEventBus_HandlerFailuresAreIsolated(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := testutil.NewMockEventHandler("Boom")
	failing.SetError(errors.New("downstream unavailable"))
	after := testutil.NewMockEventHandler("Boom")

	bus.Subscribe(failing)
	bus.Subscribe(panicHandler{})
	bus.Subscribe(after)

	err := bus.Publish(context.Background(), testutil.NewTestEvent("Boom"))

	assert.NoError(t, err)
	assert.Equal(t, 1, after.HandledCount())
	_, failed := bus.Stats()
	assert.Equal(t, int64(2), failed)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := testutil.NewMockEventHandler("A", "B")
	w := testutil.NewMockEventHandler()
	bus.Subscribe(h)
	bus.Subscribe(w)

	bus.Unsubscribe(h)
	bus.Unsubscribe(w)
	require.NoError(t, bus.Publish(context.Background(), testutil.NewTestEvent("A")))

	assert.Zero(t, h.HandledCount())
	assert.Zero(t, w.HandledCount())
}

func TestInMemoryEventBus_CancelledContext(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := testutil.NewMockEventHandler()
	bus.Subscribe(h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(ctx, testutil.NewTestEvent("A"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, h.HandledCount())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	assert.True(t, bus.running.Load())
	require.NoError(t, bus.Stop(context.Background()))
	assert.False(t, bus.running.Load())
}
