package notification

import (
	"context"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
	"shop/internal/pkg/fsm"
)

// NewOrderTransitionObserver builds a post-transition observer that turns
// every successful order status change into a notification. Register it on
// order.StatusMachine at startup.
//
// The recipient is the owning customer's identifier; the delivery channel
// resolves it to an address. The context carries what a status template
// needs: the printable number, the new status and the access secret for the
// status page link.
func NewOrderTransitionObserver(dispatcher ports.NotificationDispatcher) fsm.Observer {
	return func(event fsm.Event) {
		if event.Err != nil {
			return
		}

		o, ok := event.Entity.(*order.Order)
		if !ok {
			return
		}

		dispatcher.Dispatch(context.Background(), ports.Notification{
			EventKey:  "order." + string(event.Target),
			Recipient: o.CustomerID().String(),
			Context: map[string]string{
				"number":      o.GetNumber(),
				"status":      string(event.Target),
				"status_name": order.StatusMachine.TargetName(event.Target),
				"secret":      o.Secret(),
			},
		})
	}
}
