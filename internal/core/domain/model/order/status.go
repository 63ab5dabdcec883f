package order

import (
	"fmt"

	"encomendas/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Values are stored and sent
// over the wire verbatim.
//
// Transitions:
//
//	criada ──> cotacao ──> aprovada ──> em_andamento ──> pronta ──> entregue
//	   │          │           │              │             │
//	   └──────────┴───────────┴──────────────┴─────────────┴──> cancelada
//
// entregue and cancelada are terminal. Finalizing a delivery may force
// entregue from any state; see services.DeliveryCompletionPolicy.
type Status string

const (
	Created    Status = "criada"
	Quoting    Status = "cotacao"
	Approved   Status = "aprovada"
	InProgress Status = "em_andamento"
	Ready      Status = "pronta"
	Delivered  Status = "entregue"
	Cancelled  Status = "cancelada"
)

// forward maps each non-terminal status to the next one in the chain.
var forward = map[Status]Status{
	Created:    Quoting,
	Quoting:    Approved,
	Approved:   InProgress,
	InProgress: Ready,
	Ready:      Delivered,
}

var labels = map[Status]string{
	Created:    "Criada",
	Quoting:    "Em cotação",
	Approved:   "Aprovada",
	InProgress: "Em andamento",
	Ready:      "Pronta",
	Delivered:  "Entregue",
	Cancelled:  "Cancelada",
}

// All lists every status in lifecycle order.
func All() []Status {
	return []Status{Created, Quoting, Approved, InProgress, Ready, Delivered, Cancelled}
}

// Pending lists the statuses counted as open work on the dashboard.
func Pending() []Status {
	return []Status{Created, Quoting, Approved, InProgress}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	if _, ok := labels[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Label is the human readable name, e.g. "Em cotação".
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether target is the next step in the chain or a
// cancellation of a non-terminal order.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil || s.IsTerminal() {
		return false
	}
	if target == Cancelled {
		return true
	}
	return forward[s] == target
}

// TransitionTo returns target if the move is legal.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return s, err
	}
	if !s.CanTransitionTo(target) {
		return s, errs.NewStatusTransitionError(s.String(), target.String())
	}
	return target, nil
}
