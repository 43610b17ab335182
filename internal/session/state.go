package session

import "github.com/Skotchmaster/storefront/internal/models"

type Status int

const (
	StatusUnknown Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of the store. Cart and User are shared with
// the store and must be treated as read-only; the store replaces them instead
// of mutating them.
type State struct {
	Cart        *models.Cart
	CartLoading bool
	User        *models.User
	Token       string
	AuthLoading bool
}

func (s State) IsAuthenticated() bool {
	return s.User != nil
}

func (s State) Status() Status {
	switch {
	case s.AuthLoading:
		return StatusUnknown
	case s.User != nil && s.Token != "":
		return StatusAuthenticated
	default:
		return StatusAnonymous
	}
}
