// Package descriptor provides the read-only proto descriptor model shared by
// the classification and generation packages, plus the value types exchanged
// with the emitter. Types in this package are foundational and carry no
// behavior beyond accessors; they exist to keep the decision core independent
// of the plugin wire types.
package descriptor

import (
	"google.golang.org/protobuf/types/descriptorpb"
)

// Method is a raw proto method descriptor. The decision core never inspects
// methods; they are passed through verbatim to the emitter.
type Method = *descriptorpb.MethodDescriptorProto

// Service is a named group of remotely invocable methods.
type Service struct {
	Name    string
	Methods []Method
}

// File is one proto file from the compiler request: a package name, a
// path-like name (either slash convention may appear), and zero or more
// service definitions.
type File struct {
	Package  string
	Name     string
	Services []Service
}

// HasServices reports whether the file declares at least one service.
func (f File) HasServices() bool {
	return len(f.Services) > 0
}

// RemoteServiceInfo describes a service hosted by another process, used when
// wiring client proxies. ActorType names the concrete remote implementation,
// e.g. "acme+DataStreamConcurrentServer". RouteKeys are opaque addressing
// metadata.
type RemoteServiceInfo struct {
	ServiceName string
	RouteKeys   []string
	ActorType   string
}

// GeneratedFile is one output artifact. Instances are created by emitter
// capabilities and never mutated afterwards.
type GeneratedFile struct {
	Name    string
	Content string
}
