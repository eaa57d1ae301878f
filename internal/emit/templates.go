package emit

// The templates below render against an "actorkit" runtime: actors register a
// dispatch function with the runtime, proxies are resolved by actor type and
// route keys. Generated files are self-contained package main workloads or
// client extension files meant to sit next to the user's own code.

const emptyWorkloadTemplate = `// Code generated by protoc-gen-actor from {{.ProtoFile}}. DO NOT EDIT.

package main

import (
	"context"
	"log"

	"actorkit/runtime"
)

func main() {
	rt := runtime.New()
{{- range .Proxies}}

	// Proxy for remote service {{.ServiceName}} ({{.ActorType}}).
	{{.FieldName}} := rt.Proxy("{{.ActorType}}"{{range .RouteKeys}}, "{{.}}"{{end}})
	_ = {{.FieldName}}
{{- end}}

	if err := rt.Run(context.Background()); err != nil {
		log.Fatalf("workload exited: %v", err)
	}
}
`

const remoteExtensionsTemplate = `// Code generated by protoc-gen-actor from {{.ProtoFile}}. DO NOT EDIT.

package main

import (
	"context"

	"actorkit/runtime"
)

// {{.ServiceName}}Client is the call surface of the remote {{.ServiceName}}
// service. The implementation is hosted elsewhere; only the request shapes
// are materialized here.
type {{.ServiceName}}Client struct {
	proxy *runtime.Proxy
}

// New{{.ServiceName}}Client wraps a resolved proxy.
func New{{.ServiceName}}Client(proxy *runtime.Proxy) *{{.ServiceName}}Client {
	return &{{.ServiceName}}Client{proxy: proxy}
}
{{range .Methods}}
// {{.Name}} invokes the remote {{.Name}} method.
func (c *{{$.ServiceName}}Client) {{.Name}}(ctx context.Context, req *{{.Input}}) (*{{.Output}}, error) {
	var resp {{.Output}}
	if err := c.proxy.Call(ctx, "{{.Name}}", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
{{end}}`

const localActorTemplate = `// Code generated by protoc-gen-actor from {{.ProtoFile}}. DO NOT EDIT.

package main

import (
	"context"
	"fmt"
	"log"

	"actorkit/runtime"
)

// {{.ServiceName}}Handler is implemented by the application to serve the
// {{.ServiceName}} service.
type {{.ServiceName}}Handler interface {
{{- range .Methods}}
	{{.Name}}(ctx context.Context, req *{{.Input}}) (*{{.Output}}, error)
{{- end}}
}

// {{.ServiceName}}Dispatcher routes incoming requests to the handler.
type {{.ServiceName}}Dispatcher struct {
	handler {{.ServiceName}}Handler
}

// Dispatch decodes and routes one request by method name.
func (d *{{.ServiceName}}Dispatcher) Dispatch(ctx context.Context, method string, payload []byte) ([]byte, error) {
	switch method {
{{- range .Methods}}
	case "{{.Name}}":
		var req {{.Input}}
		if err := runtime.Decode(payload, &req); err != nil {
			return nil, err
		}
		resp, err := d.handler.{{.Name}}(ctx, &req)
		if err != nil {
			return nil, err
		}
		return runtime.Encode(resp)
{{- end}}
	default:
		return nil, fmt.Errorf("unknown method %q on {{.ServiceName}}", method)
	}
}

func main() {
	rt := runtime.New()

	var handler {{.ServiceName}}Handler // assign your implementation here
	rt.Register("{{.ServiceName}}", &{{.ServiceName}}Dispatcher{handler: handler})
{{- range .Proxies}}

	// Proxy for remote service {{.ServiceName}} ({{.ActorType}}).
	{{.FieldName}} := rt.Proxy("{{.ActorType}}"{{range .RouteKeys}}, "{{.}}"{{end}})
	_ = {{.FieldName}}
{{- end}}

	if err := rt.Run(context.Background()); err != nil {
		log.Fatalf("workload exited: %v", err)
	}
}
`

const clientWorkloadTemplate = `// Code generated by protoc-gen-actor. DO NOT EDIT.

// Default client workload: no local services were generated, but remote
// services are in use, so this entry point hosts their proxies.
package main

import (
	"context"
	"log"

	"actorkit/runtime"
)

func main() {
	rt := runtime.New()
{{- range .Proxies}}

	// Proxy for remote service {{.ServiceName}} ({{.ActorType}}).
	{{.FieldName}} := rt.Proxy("{{.ActorType}}"{{range .RouteKeys}}, "{{.}}"{{end}})
	_ = {{.FieldName}}
{{- end}}

	if err := rt.Run(context.Background()); err != nil {
		log.Fatalf("workload exited: %v", err)
	}
}
`
