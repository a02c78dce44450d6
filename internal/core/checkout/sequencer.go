// Package checkout enforces the linear address -> payment -> confirm
// progression of a checkout session. Nothing here is persisted; abandoning a
// session discards every selection.
package checkout

import (
	"errors"
	"sync"
)

type Step string

const (
	StepAddress Step = "address"
	StepPayment Step = "payment"
	StepConfirm Step = "confirm"
)

type PaymentType string

const (
	PaymentCashOnDelivery PaymentType = "cash_on_delivery"
	PaymentCreditCard     PaymentType = "credit_card"
)

var (
	ErrAddressRequired = errors.New("shipping address must be selected")
	ErrPaymentRequired = errors.New("payment method must be selected")
	ErrNotAtConfirm    = errors.New("order can only be placed from the confirm step")
)

// Session holds the in-progress selections of one checkout. Back-navigation
// never clears them.
type Session struct {
	Step            Step
	AddressID       string
	PaymentType     PaymentType
	PaymentMethodID string
	Notes           string
}

func newSession() *Session {
	return &Session{
		Step:        StepAddress,
		PaymentType: PaymentCashOnDelivery,
	}
}

// SelectAddress records the shipping address choice. Allowed at any step.
func (s *Session) SelectAddress(addressID string) {
	s.AddressID = addressID
}

// SelectPayment records the payment choice. A saved method id is only
// meaningful for card payments and is kept so that toggling back to card
// restores it.
func (s *Session) SelectPayment(pt PaymentType, methodID string) {
	s.PaymentType = pt
	if methodID != "" {
		s.PaymentMethodID = methodID
	}
}

// Next advances one step if the current step's guard is satisfied.
func (s *Session) Next() error {
	switch s.Step {
	case StepAddress:
		if s.AddressID == "" {
			return ErrAddressRequired
		}
		s.Step = StepPayment
	case StepPayment:
		if err := s.paymentSatisfied(); err != nil {
			return err
		}
		s.Step = StepConfirm
	case StepConfirm:
		// Terminal; place the order instead.
	}
	return nil
}

// Back moves one step toward address selection. Always permitted; selections
// are retained.
func (s *Session) Back() {
	switch s.Step {
	case StepConfirm:
		s.Step = StepPayment
	case StepPayment:
		s.Step = StepAddress
	}
}

// ReadyToPlace reports whether the terminal action is reachable: the session
// must sit at confirm with both guards still satisfied.
func (s *Session) ReadyToPlace() error {
	if s.Step != StepConfirm {
		return ErrNotAtConfirm
	}
	if s.AddressID == "" {
		return ErrAddressRequired
	}
	return s.paymentSatisfied()
}

func (s *Session) paymentSatisfied() error {
	if s.PaymentType == PaymentCashOnDelivery {
		return nil
	}
	if s.PaymentMethodID == "" {
		return ErrPaymentRequired
	}
	return nil
}

// Manager tracks at most one checkout session per user. Sessions are only
// touched under the manager's lock; callers never hold a *Session across
// requests, so two concurrent submissions from the same user serialize here.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Snapshot returns a copy of the user's session state, starting a fresh one
// at the address step if none is in progress.
func (m *Manager) Snapshot(userID string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.session(userID)
}

// Update runs fn against the user's session under the lock and returns the
// resulting state. The session sticks regardless of fn's error, so a failed
// guard leaves the wizard where it was.
func (m *Manager) Update(userID string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.session(userID)
	err := fn(s)
	return *s, err
}

func (m *Manager) session(userID string) *Session {
	s, ok := m.sessions[userID]
	if !ok {
		s = newSession()
		m.sessions[userID] = s
	}
	return s
}

// Discard drops the user's in-progress session, if any.
func (m *Manager) Discard(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
