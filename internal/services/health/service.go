package health

import (
	"context"
	"time"
)

// Checker probes a downstream dependency.
type Checker interface {
	Ping(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	name   string
	checks map[string]Checker
}

// NewService constructs a health service for the named binary.
func NewService(name string, checks map[string]Checker) *Service {
	return &Service{name: name, checks: checks}
}

// Status returns the liveness payload. Dependency failures are reported but never flip ok.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{"ok": true, "service": s.name}
	if len(s.checks) == 0 {
		return out
	}
	deps := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := check.Ping(pingCtx); err != nil {
			deps[name] = err.Error()
		} else {
			deps[name] = "ok"
		}
		cancel()
	}
	out["dependencies"] = deps
	return out
}
