package authz

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// Event describes one decision made by a Guard.
type Event struct {
	Caller     domain.Caller
	Result     Result
	TargetID   string
	OccurredAt time.Time
}

// Observer is notified of every decision. Implementations must not block.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) Observe(ctx context.Context, ev Event) { f(ctx, ev) }

// ResolveFunc loads the facts for a single target.
type ResolveFunc func(ctx context.Context) (Facts, error)

// Guard is what services call before touching persistence.
type Guard struct {
	log       zerolog.Logger
	observers []Observer
	now       func() time.Time
}

func NewGuard(log zerolog.Logger, observers ...Observer) *Guard {
	return &Guard{log: log, observers: observers, now: time.Now}
}

// Authorize decides action against facts the caller already holds.
func (g *Guard) Authorize(ctx context.Context, caller domain.Caller, action Action, facts Facts) error {
	res := Decide(caller, action, facts)
	g.report(ctx, caller, res, facts.TargetID())
	return res.Err()
}

// AuthorizeResolved checks a single target: the disabled flag first, then
// resolution of the target and its ancestry, then the decision.
//
// A missing target or ancestor is reported to admins as the underlying
// not-found error. Everyone else gets domain.ErrForbidden for both missing
// and inaccessible targets so ids cannot be probed.
func (g *Guard) AuthorizeResolved(ctx context.Context, caller domain.Caller, action Action, targetID string, resolve ResolveFunc) (Facts, error) {
	if pre := Decide(caller, action, Facts{}); pre.Reason == ReasonUnauthenticated || pre.Reason == ReasonAccountDisabled {
		g.report(ctx, caller, pre, targetID)
		return Facts{}, pre.Err()
	}

	facts, err := resolve(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return Facts{}, err
		}
		if caller.IsAdmin() {
			g.report(ctx, caller, deny(action, ReasonNotFound), targetID)
			return Facts{}, err
		}
		g.report(ctx, caller, deny(action, ReasonForbidden), targetID)
		return Facts{}, domain.ErrForbidden
	}

	res := Decide(caller, action, facts)
	if id := facts.TargetID(); id != "" {
		targetID = id
	}
	g.report(ctx, caller, res, targetID)
	return facts, res.Err()
}

func (g *Guard) report(ctx context.Context, caller domain.Caller, res Result, targetID string) {
	if !res.Allowed() {
		g.log.Debug().
			Str("caller_id", caller.ID).
			Str("role", string(caller.Role)).
			Str("action", res.Action.String()).
			Str("target_id", targetID).
			Str("reason", res.Reason.String()).
			Msg("authorization denied")
	}
	if len(g.observers) == 0 {
		return
	}
	ev := Event{Caller: caller, Result: res, TargetID: targetID, OccurredAt: g.now().UTC()}
	for _, o := range g.observers {
		o.Observe(ctx, ev)
	}
}
