// Package strategy holds the per-file generation rules and the selector that
// picks one per file. The rule set is closed: a fixed, small list of
// (priority, predicate, action) tuples evaluated in priority order, not an
// open plugin registry. Strategies are constructed explicitly at the
// orchestrator call site; no package-level state survives between runs.
package strategy

import (
	"sort"

	"go.uber.org/zap"

	"actorgen/internal/classify"
	"actorgen/internal/descriptor"
)

// Priorities of the built-in strategies. Lower is evaluated first. The
// fallback never matches through per-file dispatch; its priority exists for
// ordering diagnostics only.
const (
	PriorityEmptyLocalWorkload    = 1
	PriorityRemoteService         = 2
	PriorityLocalService          = 3
	PriorityDefaultClientWorkload = 999
)

// Strategy is one generation rule: CanHandle decides whether the rule applies
// to a file, Apply produces the artifacts. Apply may mark the run as having a
// local workload via the context; CanHandle must be pure.
type Strategy struct {
	Priority int
	// Name is diagnostic only.
	Name      string
	CanHandle func(f descriptor.File, ctx *classify.Context) bool
	Apply     func(f descriptor.File, ctx *classify.Context) ([]descriptor.GeneratedFile, error)
}

// Selector scans a priority-ordered rule list and returns the first match.
type Selector struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewSelector sorts the given strategies ascending by priority. The sort is
// stable so equal priorities keep their construction order. A nil logger is
// replaced with a no-op logger.
func NewSelector(strategies []Strategy, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	sorted := make([]Strategy, len(strategies))
	copy(sorted, strategies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return &Selector{strategies: sorted, logger: logger}
}

// Select returns the first strategy whose predicate matches the file, or
// ok=false when none does. Each file is classified independently; selection
// never depends on which files came before.
func (s *Selector) Select(f descriptor.File, ctx *classify.Context) (Strategy, bool) {
	for _, st := range s.strategies {
		if st.CanHandle(f, ctx) {
			s.logger.Debug("selected strategy",
				zap.String("strategy", st.Name),
				zap.String("file", f.Name))
			return st, true
		}
	}
	s.logger.Debug("no strategy matched", zap.String("file", f.Name))
	return Strategy{}, false
}
