package customer

import (
	"errors"
	"fmt"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not created
	// through the NewCustomer factory method.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

	// ErrNumberAlreadyAssigned is returned when a customer number assignment is
	// attempted a second time. Numbers are handed out exactly once.
	ErrNumberAlreadyAssigned = errors.New("customer number has already been assigned")
)

// Recognition describes how well the shop knows a customer.
type Recognition string

const (
	// Visitor is an anonymous session without any provided identity.
	Visitor Recognition = "visitor"

	// Guest checked out with an email address but without creating an account.
	Guest Recognition = "guest"

	// Registered holds a full account.
	Registered Recognition = "registered"
)

// Validate checks that the recognition level is one of the known values.
func (r Recognition) Validate() error {
	switch r {
	case Visitor, Guest, Registered:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("recognition",
		fmt.Errorf("'%s' is not a known recognition level", r))
}

// Address is a postal address as captured at checkout.
type Address struct {
	Name    string
	Street  string
	ZipCode string
	City    string
	Country string
}

// IsZero reports whether no address was captured.
func (a Address) IsZero() bool {
	return a == Address{}
}

// AsText renders the address as the multi-line block printed on orders.
func (a Address) AsText() string {
	lines := make([]string, 0, 4)
	for _, line := range []string{a.Name, a.Street, strings.TrimSpace(a.ZipCode + " " + a.City), a.Country} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Customer represents one buyer of a store, from anonymous visitor to registered
// account holder. It owns the customer number, which is assigned exactly once, and
// the default shipping and billing addresses.
type Customer struct {
	// id is the unique identifier for the customer
	id kernel.UUID

	// storeID references the store this customer belongs to
	storeID kernel.UUID

	// recognition is the identity level of the customer
	recognition Recognition

	// email is required for guests and registered customers
	email string

	// number is the sequential customer number, nil until assigned
	number *int

	// shippingAddress is the default delivery address
	shippingAddress Address

	// billingAddress is the default invoice address
	billingAddress Address

	// isConstructed ensures the customer was created via NewCustomer
	isConstructed bool
}

// NewCustomer creates a new Customer instance with validation. Visitors may have an
// empty email; guests and registered customers must not.
func NewCustomer(id kernel.UUID, storeID kernel.UUID, recognition Recognition, email string) (*Customer, error) {
	c := &Customer{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setStoreID(storeID),
		c.setRecognition(recognition, email),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer reconstructs a Customer aggregate from persistent storage,
// including an already assigned customer number.
func RestoreCustomer(
	id kernel.UUID,
	storeID kernel.UUID,
	recognition Recognition,
	email string,
	number *int,
	shippingAddress Address,
	billingAddress Address,
) (*Customer, error) {
	c := &Customer{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setStoreID(storeID),
		c.setRecognition(recognition, email),
	); err != nil {
		return nil, err
	}

	if number != nil {
		n := *number
		c.number = &n
	}
	c.shippingAddress = shippingAddress
	c.billingAddress = billingAddress
	return c, nil
}

// Validate ensures the Customer instance was properly constructed through NewCustomer.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}

	return nil
}

// IsEqual compares two customers by their unique identifiers.
func (c *Customer) IsEqual(other *Customer) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// StoreID returns the identifier of the store this customer belongs to.
func (c *Customer) StoreID() kernel.UUID {
	return c.storeID
}

// Recognition returns the identity level of the customer.
func (c *Customer) Recognition() Recognition {
	return c.recognition
}

// Email returns the customer's email address; empty for visitors.
func (c *Customer) Email() string {
	return c.email
}

// Number returns the assigned customer number and whether one was assigned yet.
func (c *Customer) Number() (int, bool) {
	if c.number == nil {
		return 0, false
	}
	return *c.number, true
}

// AssignNumber stores the sequential customer number. Assignment happens exactly
// once; a second call fails regardless of the value.
func (c *Customer) AssignNumber(number int) error {
	if c.number != nil {
		return ErrNumberAlreadyAssigned
	}
	if number <= 0 {
		return errs.NewValueIsOutOfRangeError("number", number, 1, "unbounded")
	}

	c.number = &number
	return nil
}

// GetOrAssignNumber returns the customer number, drawing a fresh one from next on
// first use. The caller supplies next from a repository holding the sequence lock,
// so concurrent assignments cannot draw the same number.
func (c *Customer) GetOrAssignNumber(next func() (int, error)) (int, error) {
	if c.number != nil {
		return *c.number, nil
	}

	number, err := next()
	if err != nil {
		return 0, err
	}
	if err := c.AssignNumber(number); err != nil {
		return 0, err
	}
	return number, nil
}

// RecognizeAsGuest upgrades a visitor checking out with an email address.
func (c *Customer) RecognizeAsGuest(email string) error {
	return c.setRecognition(Guest, email)
}

// RecognizeAsRegistered upgrades the customer to a full account holder.
func (c *Customer) RecognizeAsRegistered(email string) error {
	return c.setRecognition(Registered, email)
}

// ShippingAddress returns the default delivery address.
func (c *Customer) ShippingAddress() Address {
	return c.shippingAddress
}

// BillingAddress returns the default invoice address.
func (c *Customer) BillingAddress() Address {
	return c.billingAddress
}

// SetShippingAddress stores the default delivery address.
func (c *Customer) SetShippingAddress(address Address) {
	c.shippingAddress = address
}

// SetBillingAddress stores the default invoice address.
func (c *Customer) SetBillingAddress(address Address) {
	c.billingAddress = address
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.storeID = id
	return nil
}

func (c *Customer) setRecognition(recognition Recognition, email string) error {
	if err := recognition.Validate(); err != nil {
		return err
	}
	if recognition != Visitor && email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	c.recognition = recognition
	c.email = email
	return nil
}
