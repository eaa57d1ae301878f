package strategy

import (
	"fmt"

	"go.uber.org/zap"

	"actorgen/internal/classify"
	"actorgen/internal/descriptor"
	"actorgen/internal/emit"
)

// EmptyLocalWorkload handles explicitly local files with no services: the
// pure-client scenario. It emits one workload shell that only proxies to the
// run's remote services, and marks the run as having a local workload.
func EmptyLocalWorkload(emitter emit.Emitter, logger *zap.Logger) Strategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Strategy{
		Priority: PriorityEmptyLocalWorkload,
		Name:     "EmptyLocalWorkload",
		CanHandle: func(f descriptor.File, ctx *classify.Context) bool {
			return !ctx.IsRemote(f) && !ctx.HasServices(f) && ctx.IsLocal(f)
		},
		Apply: func(f descriptor.File, ctx *classify.Context) ([]descriptor.GeneratedFile, error) {
			out, err := emitter.EmitEmptyWorkload(f.Package, f.Name, ctx.RemoteServices())
			if err != nil {
				return nil, fmt.Errorf("empty local workload for %q: %w", f.Name, err)
			}
			ctx.MarkLocalWorkload()
			logger.Info("generated empty local workload",
				zap.String("file", f.Name),
				zap.String("artifact", out.Name))
			return []descriptor.GeneratedFile{out}, nil
		},
	}
}

// RemoteService handles files listed in the remote catalog, regardless of
// service count or local marking. It emits client-side call extensions, one
// artifact per service, and never touches the local-workload flag. A remote
// file with zero services legitimately yields zero artifacts.
func RemoteService(emitter emit.Emitter, logger *zap.Logger) Strategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Strategy{
		Priority: PriorityRemoteService,
		Name:     "RemoteService",
		CanHandle: func(f descriptor.File, ctx *classify.Context) bool {
			return ctx.IsRemote(f)
		},
		Apply: func(f descriptor.File, ctx *classify.Context) ([]descriptor.GeneratedFile, error) {
			var out []descriptor.GeneratedFile
			for _, svc := range f.Services {
				gf, err := emitter.EmitRemoteExtensionsOnly(f.Package, f.Name, svc.Name, svc.Methods)
				if err != nil {
					return nil, fmt.Errorf("remote extensions for service %q in %q: %w", svc.Name, f.Name, err)
				}
				out = append(out, gf)
				logger.Info("generated remote extensions",
					zap.String("file", f.Name),
					zap.String("service", svc.Name),
					zap.String("artifact", gf.Name))
			}
			return out, nil
		},
	}
}

// LocalService handles non-remote files that declare services: the server
// scenario. Local marking is irrelevant here; a service definition is itself
// proof of local ownership. One artifact per service, each carrying the full
// server-side shape, and the run is marked as having a local workload.
func LocalService(emitter emit.Emitter, logger *zap.Logger) Strategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Strategy{
		Priority: PriorityLocalService,
		Name:     "LocalService",
		CanHandle: func(f descriptor.File, ctx *classify.Context) bool {
			return !ctx.IsRemote(f) && ctx.HasServices(f)
		},
		Apply: func(f descriptor.File, ctx *classify.Context) ([]descriptor.GeneratedFile, error) {
			var out []descriptor.GeneratedFile
			for _, svc := range f.Services {
				gf, err := emitter.EmitLocalActorCode(f.Package, f.Name, svc.Name, svc.Methods, ctx.RemoteServices())
				if err != nil {
					return nil, fmt.Errorf("local actor code for service %q in %q: %w", svc.Name, f.Name, err)
				}
				out = append(out, gf)
				logger.Info("generated local actor code",
					zap.String("file", f.Name),
					zap.String("service", svc.Name),
					zap.String("artifact", gf.Name))
			}
			ctx.MarkLocalWorkload()
			return out, nil
		},
	}
}

// Defaults returns the per-file strategies in their canonical order. The
// fallback is not part of per-file dispatch; see Fallback.
func Defaults(emitter emit.Emitter, logger *zap.Logger) []Strategy {
	return []Strategy{
		EmptyLocalWorkload(emitter, logger),
		RemoteService(emitter, logger),
		LocalService(emitter, logger),
	}
}

// Fallback is the default-client-workload rule. The orchestrator consults it
// directly, exactly once, after every file has been processed; it never
// participates in per-file dispatch.
type Fallback struct {
	emitter emit.Emitter
	logger  *zap.Logger
}

// NewFallback builds the fallback rule.
func NewFallback(emitter emit.Emitter, logger *zap.Logger) Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Fallback{emitter: emitter, logger: logger}
}

// ShouldGenerate reports whether the fallback fires: remote services exist
// but no locally hosted workload was generated anywhere in the run.
func (fb Fallback) ShouldGenerate(ctx *classify.Context) bool {
	return len(ctx.RemoteServices()) > 0 && !ctx.HasLocalWorkload()
}

// Generate emits the minimal client workload hosting proxies to every remote
// service in the catalog.
func (fb Fallback) Generate(ctx *classify.Context) (descriptor.GeneratedFile, error) {
	out, err := fb.emitter.EmitClientWorkload(ctx.RemoteServices())
	if err != nil {
		return descriptor.GeneratedFile{}, fmt.Errorf("default client workload: %w", err)
	}
	fb.logger.Info("generated default client workload (no local services found)",
		zap.String("artifact", out.Name))
	return out, nil
}
