package service

import (
	"github.com/mdouchement/spacetime/internal/apierror"
	"github.com/mdouchement/spacetime/internal/model"
)

// A Decision is the outcome of a guard.
// A denied decision carries the error to render.
type Decision struct {
	Allowed bool
	Reason  error
}

// Allow returns a positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a negative decision for the given reason.
func Deny(reason error) Decision {
	return Decision{Reason: reason}
}

// Err returns nil when the decision is allowed, the reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

// CanRead tells whether the principal can read the given memory.
// Public memories are readable by anyone, private ones only by their owner.
func CanRead(p model.Principal, m *model.Memory) Decision {
	if !p.Enforced || m.IsPublic || m.IsOwnedBy(p.UserID) {
		return Allow()
	}
	return Deny(apierror.Forbidden())
}

// CanWrite tells whether the principal can update or delete the given memory.
// Visibility does not matter, only the owner can write.
func CanWrite(p model.Principal, m *model.Memory) Decision {
	if !p.Enforced || m.IsOwnedBy(p.UserID) {
		return Allow()
	}
	return Deny(apierror.NotOwner())
}
