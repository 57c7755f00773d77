package output

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/strodow/plucky/internal/frame"
)

// Router fans one program frame out to every active target. Delivery
// failures are collected per target and never abort the other
// deliveries.
type Router struct {
	mu      sync.Mutex
	targets []Target
	log     *slog.Logger

	// Notify, when set, is called once per failed delivery with the
	// target's name, on the goroutine that called Broadcast.
	Notify func(target string, err error)
}

func NewRouter(log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{log: log}
}

// Register adds a target. Registering does not activate it.
func (r *Router) Register(t Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, t)
}

// Targets returns the registered targets in registration order.
func (r *Router) Targets() []Target {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// Target looks a registered target up by name.
func (r *Router) Target(name string) (Target, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.targets {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Broadcast delivers b to every active target. Each target receives its
// own copy of the same frame, so a slow or mutating consumer cannot
// corrupt another target's delivery. A target that fails is deactivated
// so a dead device does not stall every subsequent frame; the operator
// re-enables it once the fault is cleared. The returned error joins all
// per-target failures.
func (r *Router) Broadcast(b *frame.Buffer) error {
	if b == nil {
		return errors.New("output: nil frame")
	}

	r.mu.Lock()
	active := make([]Target, 0, len(r.targets))
	for _, t := range r.targets {
		if t.Active() {
			active = append(active, t)
		}
	}
	r.mu.Unlock()

	if len(active) == 0 {
		return nil
	}

	errs := make([]error, len(active))
	var g errgroup.Group
	for i, t := range active {
		i, t := i, t
		clone := b.Clone()
		g.Go(func() error {
			if err := t.AcceptFrame(clone); err != nil {
				errs[i] = fmt.Errorf("deliver to %s: %w", t.Name(), err)
			}
			return nil
		})
	}
	g.Wait()

	var joined []error
	for i, err := range errs {
		if err == nil {
			continue
		}
		t := active[i]
		r.log.Error("output delivery failed", "target", t.Name(), "error", err)
		if derr := t.SetActive(false); derr != nil {
			r.log.Warn("deactivating failed target", "target", t.Name(), "error", derr)
		}
		if r.Notify != nil {
			r.Notify(t.Name(), err)
		}
		joined = append(joined, err)
	}
	return errors.Join(joined...)
}
