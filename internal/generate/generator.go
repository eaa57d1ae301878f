// Package generate orchestrates one generation pass: build the classification
// context from the manifest, walk every file in request order, apply the
// selected strategy, then evaluate the fallback rule exactly once.
package generate

import (
	"fmt"

	"go.uber.org/zap"

	"actorgen/internal/classify"
	"actorgen/internal/config"
	"actorgen/internal/descriptor"
	"actorgen/internal/emit"
	"actorgen/internal/strategy"
)

// Generator runs the decision pipeline. Construct one per run; it holds no
// state between runs.
type Generator struct {
	selector *strategy.Selector
	fallback strategy.Fallback
	logger   *zap.Logger
}

// New wires the default strategy set and fallback around the given emitter.
func New(emitter emit.Emitter, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		selector: strategy.NewSelector(strategy.Defaults(emitter, logger), logger),
		fallback: strategy.NewFallback(emitter, logger),
		logger:   logger,
	}
}

// ContextFromManifest builds the run's classification context.
func ContextFromManifest(m *config.Manifest) *classify.Context {
	return classify.NewContext(m.RemoteFiles, m.LocalFiles, m.RemoteServiceInfos())
}

// Run processes all files sequentially and returns the accumulated artifacts.
// A file matching no strategy is skipped without error. Emitter failures
// abort the run; there are no retries. The fallback decision is evaluated
// strictly after the loop so it observes the final local-workload flag.
func (g *Generator) Run(files []descriptor.File, ctx *classify.Context) ([]descriptor.GeneratedFile, error) {
	var artifacts []descriptor.GeneratedFile
	for _, f := range files {
		st, ok := g.selector.Select(f, ctx)
		if !ok {
			continue
		}
		out, err := st.Apply(f, ctx)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", st.Name, err)
		}
		artifacts = append(artifacts, out...)
	}

	if g.fallback.ShouldGenerate(ctx) {
		out, err := g.fallback.Generate(ctx)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, out)
	}

	g.logger.Debug("generation pass complete",
		zap.Int("files", len(files)),
		zap.Int("artifacts", len(artifacts)),
		zap.Bool("local_workload", ctx.HasLocalWorkload()))
	return artifacts, nil
}
