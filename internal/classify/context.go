// Package classify derives per-file predicates (remote, local, service-bearing)
// from the catalogs supplied alongside the compiler request, and carries the
// one piece of run-wide accumulated state: whether any locally hosted workload
// was generated.
package classify

import (
	"strings"

	"actorgen/internal/descriptor"
)

// NormalizePath canonicalizes path separators to forward slashes so that a
// descriptor name using either convention matches the same catalog entry.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Context is built once per generation run and threaded through the whole
// pass. All predicates are pure; hasLocalWorkload is the single mutable field,
// monotonic (once true it is never reset) and updated only through
// MarkLocalWorkload.
type Context struct {
	remoteFileToActorType map[string]string
	localFiles            map[string]struct{}
	remoteServices        []descriptor.RemoteServiceInfo

	hasLocalWorkload bool
}

// NewContext builds a context from the external catalogs. Catalog keys and
// local paths are normalized on the way in so lookups never have to care
// which separator convention the catalog author used.
func NewContext(
	remoteFileToActorType map[string]string,
	localFiles []string,
	remoteServices []descriptor.RemoteServiceInfo,
) *Context {
	ctx := &Context{
		remoteFileToActorType: make(map[string]string, len(remoteFileToActorType)),
		localFiles:            make(map[string]struct{}, len(localFiles)),
		remoteServices:        remoteServices,
	}
	for path, actorType := range remoteFileToActorType {
		ctx.remoteFileToActorType[NormalizePath(path)] = actorType
	}
	for _, path := range localFiles {
		ctx.localFiles[NormalizePath(path)] = struct{}{}
	}
	return ctx
}

// IsRemote reports whether the file is a remote dependency.
func (c *Context) IsRemote(f descriptor.File) bool {
	_, ok := c.remoteFileToActorType[NormalizePath(f.Name)]
	return ok
}

// ActorType returns the actor type backing a remote file, if any.
func (c *Context) ActorType(f descriptor.File) (string, bool) {
	actorType, ok := c.remoteFileToActorType[NormalizePath(f.Name)]
	return actorType, ok
}

// IsLocal reports whether the file is explicitly marked as local.
func (c *Context) IsLocal(f descriptor.File) bool {
	_, ok := c.localFiles[NormalizePath(f.Name)]
	return ok
}

// HasServices reports whether the file declares any services.
func (c *Context) HasServices(f descriptor.File) bool {
	return f.HasServices()
}

// RemoteServices returns the remote-service catalog in its declared order.
func (c *Context) RemoteServices() []descriptor.RemoteServiceInfo {
	return c.remoteServices
}

// HasLocalWorkload reports whether any strategy produced a locally hosted
// workload during this run. Read by the fallback decision after the per-file
// loop.
func (c *Context) HasLocalWorkload() bool {
	return c.hasLocalWorkload
}

// MarkLocalWorkload records that a locally hosted workload was generated.
// The flag is an idempotent logical OR, so the final value is independent of
// file processing order.
func (c *Context) MarkLocalWorkload() {
	c.hasLocalWorkload = true
}
