package order

import "shop/internal/pkg/fsm"

// Order lifecycle states. The base workflow covers creation and payment; the
// fulfilment workflow contributes shipping and cancellation.
const (
	StatusNew              fsm.State = "new"
	StatusCreated          fsm.State = "created"
	StatusPaymentConfirmed fsm.State = "payment_confirmed"
	StatusPaymentDeclined  fsm.State = "payment_declined"
	StatusShipped          fsm.State = "shipped"
	StatusShipFailed       fsm.State = "ship_failed"
	StatusCanceled         fsm.State = "canceled"
	StatusRefundRequired   fsm.State = "refund_required"
)

// Transition method names, usable with StatusMachine queries.
const (
	MethodPopulateFromCart   = "PopulateFromCart"
	MethodAcknowledgePayment = "AcknowledgePayment"
	MethodDeclinePayment     = "DeclinePayment"
	MethodCancel             = "Cancel"
	MethodShip               = "Ship"
)

// Capability describes what an order in a given state permits. The status
// machine switches the active capability after every transition.
type Capability struct {
	CanCancel bool
}

// baseWorkflow declares creation and payment handling.
func baseWorkflow() fsm.Extension {
	return fsm.Extension{
		Name: "base",
		Targets: map[fsm.State]string{
			StatusNew:              "New",
			StatusCreated:          "Created",
			StatusPaymentConfirmed: "Payment confirmed",
			StatusPaymentDeclined:  "Payment declined",
		},
		Transitions: []fsm.Transition{
			{
				Method:  MethodPopulateFromCart,
				Sources: []fsm.State{StatusNew},
				Target:  fsm.To(StatusCreated),
			},
			{
				Method:  MethodAcknowledgePayment,
				Sources: []fsm.State{fsm.SourceAny},
				Target:  fsm.To(StatusPaymentConfirmed),
				Guards: []fsm.Guard{func(entity any) bool {
					return entity.(*Order).IsFullyPaid()
				}},
			},
			{
				Method:  MethodDeclinePayment,
				Sources: []fsm.State{fsm.SourceAny},
				Target:  fsm.To(StatusPaymentDeclined),
			},
		},
	}
}

// fulfilmentWorkflow declares shipping and cancellation.
func fulfilmentWorkflow() fsm.Extension {
	return fsm.Extension{
		Name: "fulfilment",
		Targets: map[fsm.State]string{
			StatusShipped:        "Shipped",
			StatusShipFailed:     "Shipping failed",
			StatusCanceled:       "Canceled",
			StatusRefundRequired: "Refund required",
		},
		Transitions: []fsm.Transition{
			{
				// Cancellation ends in canceled, or refund_required when
				// money was already taken.
				Method:  MethodCancel,
				Sources: []fsm.State{StatusCreated, StatusPaymentConfirmed},
				Target:  fsm.FromResult(StatusCanceled, StatusRefundRequired),
			},
			{
				Method:  MethodShip,
				Sources: []fsm.State{StatusPaymentConfirmed},
				Target:  fsm.To(StatusShipped),
				OnError: StatusShipFailed,
			},
		},
	}
}

// StatusMachine is the prepared transition table shared by all orders. Post
// observers for outbound notifications are registered here at composition time.
var StatusMachine = newStatusMachine()

func newStatusMachine() *fsm.Machine {
	m := fsm.MustNewMachine("Order", "status", baseWorkflow(), fulfilmentWorkflow())
	m.RegisterVariants(map[fsm.State]any{
		StatusCreated:          Capability{CanCancel: true},
		StatusPaymentConfirmed: Capability{CanCancel: true},
	})
	return m
}
