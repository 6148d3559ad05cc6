package notification_test

import (
	"context"
	"errors"
	"testing"

	"shop/internal/adapters/out/notification"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
	"shop/internal/pkg/fsm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	sent []ports.Notification
}

func (d *recordingDispatcher) Dispatch(_ context.Context, n ports.Notification) {
	d.sent = append(d.sent, n)
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.Currency("EUR"), 2026, 42)
	require.NoError(t, err)
	return o
}

func Test_OrderTransitionObserver_DispatchesOnSuccess(t *testing.T) {
	// Arrange
	dispatcher := &recordingDispatcher{}
	observer := notification.NewOrderTransitionObserver(dispatcher)
	o := newTestOrder(t)

	// Act
	observer(fsm.Event{
		Entity: o,
		Method: order.MethodPopulateFromCart,
		Source: order.StatusNew,
		Target: order.StatusCreated,
	})

	// Assert
	require.Len(t, dispatcher.sent, 1)
	sent := dispatcher.sent[0]
	assert.Equal(t, "order.created", sent.EventKey)
	assert.Equal(t, o.CustomerID().String(), sent.Recipient)
	assert.Equal(t, "2026-00042", sent.Context["number"])
	assert.Equal(t, "Created", sent.Context["status_name"])
	assert.Equal(t, o.Secret(), sent.Context["secret"])
}

func Test_OrderTransitionObserver_IgnoresFailedTransitions(t *testing.T) {
	// Arrange
	dispatcher := &recordingDispatcher{}
	observer := notification.NewOrderTransitionObserver(dispatcher)

	// Act
	observer(fsm.Event{
		Entity: newTestOrder(t),
		Method: order.MethodShip,
		Source: order.StatusPaymentConfirmed,
		Target: order.StatusShipFailed,
		Err:    errors.New("carrier rejected the parcel"),
	})

	// Assert
	assert.Empty(t, dispatcher.sent)
}

func Test_OrderTransitionObserver_IgnoresOtherEntities(t *testing.T) {
	// Arrange
	dispatcher := &recordingDispatcher{}
	observer := notification.NewOrderTransitionObserver(dispatcher)

	// Act
	observer(fsm.Event{
		Entity: struct{}{},
		Method: order.MethodCancel,
		Source: order.StatusCreated,
		Target: order.StatusCanceled,
	})

	// Assert
	assert.Empty(t, dispatcher.sent)
}
