// Package emit renders generated source artifacts. The Emitter interface is
// the boundary between the decision core and template rendering: each
// capability is a pure function from structured arguments to one artifact.
package emit

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"actorgen/internal/descriptor"
)

// Emitter exposes the four rendering capabilities the generation strategies
// invoke. Implementations must be deterministic: identical arguments yield
// identical artifacts.
type Emitter interface {
	// EmitEmptyWorkload renders a workload shell that only hosts proxies to
	// the remote services; no locally hosted service logic.
	EmitEmptyWorkload(pkg, fileName string, remotes []descriptor.RemoteServiceInfo) (descriptor.GeneratedFile, error)

	// EmitRemoteExtensionsOnly renders client-side call interfaces for one
	// remote service; no server-side dispatch.
	EmitRemoteExtensionsOnly(pkg, fileName, serviceName string, methods []descriptor.Method) (descriptor.GeneratedFile, error)

	// EmitLocalActorCode renders the full server-side shape for one service:
	// request handler, dispatch table, and a runnable workload entry point,
	// as a single artifact.
	EmitLocalActorCode(pkg, fileName, serviceName string, methods []descriptor.Method, remotes []descriptor.RemoteServiceInfo) (descriptor.GeneratedFile, error)

	// EmitClientWorkload renders the minimal fallback workload that hosts
	// proxies to every remote service in the catalog.
	EmitClientWorkload(remotes []descriptor.RemoteServiceInfo) (descriptor.GeneratedFile, error)
}

// actorFileSuffix is the marker appended to local actor artifact names,
// e.g. package "echo_app" -> "echo_app_service_actor.go".
const actorFileSuffix = "_service_actor"

// sourceExt is the extension of emitted source files.
const sourceExt = ".go"

// ActorFileName derives the local actor artifact name: the normalized package
// name when present, otherwise the normalized service name.
func ActorFileName(pkg, serviceName string) string {
	base := pkg
	if base == "" {
		base = serviceName
	}
	return ToSnakeCase(base) + actorFileSuffix + sourceExt
}

// GoEmitter renders Go source via text/template.
type GoEmitter struct {
	emptyWorkload  *template.Template
	remoteExt      *template.Template
	localActor     *template.Template
	clientWorkload *template.Template
}

// NewGoEmitter parses the built-in templates. Template syntax errors are
// programmer errors, so parsing panics via template.Must.
func NewGoEmitter() *GoEmitter {
	return &GoEmitter{
		emptyWorkload:  template.Must(template.New("empty_workload").Parse(emptyWorkloadTemplate)),
		remoteExt:      template.Must(template.New("remote_ext").Parse(remoteExtensionsTemplate)),
		localActor:     template.Must(template.New("local_actor").Parse(localActorTemplate)),
		clientWorkload: template.Must(template.New("client_workload").Parse(clientWorkloadTemplate)),
	}
}

type proxyData struct {
	ServiceName string
	ActorType   string
	RouteKeys   []string
	FieldName   string
}

type methodData struct {
	Name   string
	Input  string
	Output string
}

func proxies(remotes []descriptor.RemoteServiceInfo) []proxyData {
	out := make([]proxyData, 0, len(remotes))
	for _, r := range remotes {
		out = append(out, proxyData{
			ServiceName: r.ServiceName,
			ActorType:   r.ActorType,
			RouteKeys:   r.RouteKeys,
			FieldName:   ToSnakeCase(r.ServiceName),
		})
	}
	return out
}

func methodViews(methods []descriptor.Method) []methodData {
	out := make([]methodData, 0, len(methods))
	for _, m := range methods {
		out = append(out, methodData{
			Name:   m.GetName(),
			Input:  messageTypeName(m.GetInputType()),
			Output: messageTypeName(m.GetOutputType()),
		})
	}
	return out
}

// messageTypeName strips the leading package qualifier from a fully qualified
// proto type name (".pkg.Msg" -> "Msg").
func messageTypeName(fq string) string {
	if i := strings.LastIndex(fq, "."); i >= 0 {
		return fq[i+1:]
	}
	return fq
}

func (e *GoEmitter) render(t *template.Template, name string, data any) (descriptor.GeneratedFile, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return descriptor.GeneratedFile{}, fmt.Errorf("rendering %s: %w", name, err)
	}
	return descriptor.GeneratedFile{Name: name, Content: buf.String()}, nil
}

// EmitEmptyWorkload implements Emitter.
func (e *GoEmitter) EmitEmptyWorkload(pkg, fileName string, remotes []descriptor.RemoteServiceInfo) (descriptor.GeneratedFile, error) {
	base := pkg
	if base == "" {
		base = FileStem(fileName)
	}
	name := ToSnakeCase(base) + "_workload" + sourceExt
	return e.render(e.emptyWorkload, name, struct {
		Package   string
		ProtoFile string
		Proxies   []proxyData
	}{pkg, fileName, proxies(remotes)})
}

// EmitRemoteExtensionsOnly implements Emitter.
func (e *GoEmitter) EmitRemoteExtensionsOnly(pkg, fileName, serviceName string, methods []descriptor.Method) (descriptor.GeneratedFile, error) {
	name := ToSnakeCase(serviceName) + "_remote_ext" + sourceExt
	return e.render(e.remoteExt, name, struct {
		Package     string
		ProtoFile   string
		ServiceName string
		Methods     []methodData
	}{pkg, fileName, serviceName, methodViews(methods)})
}

// EmitLocalActorCode implements Emitter.
func (e *GoEmitter) EmitLocalActorCode(pkg, fileName, serviceName string, methods []descriptor.Method, remotes []descriptor.RemoteServiceInfo) (descriptor.GeneratedFile, error) {
	return e.render(e.localActor, ActorFileName(pkg, serviceName), struct {
		Package     string
		ProtoFile   string
		ServiceName string
		Methods     []methodData
		Proxies     []proxyData
	}{pkg, fileName, serviceName, methodViews(methods), proxies(remotes)})
}

// EmitClientWorkload implements Emitter.
func (e *GoEmitter) EmitClientWorkload(remotes []descriptor.RemoteServiceInfo) (descriptor.GeneratedFile, error) {
	return e.render(e.clientWorkload, "default_client_workload"+sourceExt, struct {
		Proxies []proxyData
	}{proxies(remotes)})
}
