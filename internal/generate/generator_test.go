package generate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"actorgen/internal/classify"
	"actorgen/internal/descriptor"
	"actorgen/internal/emit"
)

func newContext(remote map[string]string, local []string, remotes []descriptor.RemoteServiceInfo) *classify.Context {
	return classify.NewContext(remote, local, remotes)
}

func method(name string) descriptor.Method {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(".p." + name + "Request"),
		OutputType: proto.String(".p." + name + "Response"),
	}
}

var remoteX = descriptor.RemoteServiceInfo{ServiceName: "X", RouteKeys: []string{"k1"}, ActorType: "acme+X"}
var remoteY = descriptor.RemoteServiceInfo{ServiceName: "Y", ActorType: "acme+Y"}

// Scenario A: a service-bearing non-remote file matches LocalService and
// yields one artifact named from the package plus the actor-code suffix.
func TestRun_LocalServiceFile(t *testing.T) {
	gen := New(emit.NewGoEmitter(), nil)
	ctx := newContext(nil, nil, nil)

	files := []descriptor.File{{
		Package: "p",
		Name:    "p.proto",
		Services: []descriptor.Service{
			{Name: "S", Methods: []descriptor.Method{method("M1"), method("M2")}},
		},
	}}

	out, err := gen.Run(files, ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p_service_actor.go", out[0].Name)
	assert.True(t, ctx.HasLocalWorkload())
}

// Scenario B: an empty local-marked file produces a workload shell; the
// fallback does not fire even though remote services exist.
func TestRun_EmptyLocalMarkedFile(t *testing.T) {
	gen := New(emit.NewGoEmitter(), nil)
	ctx := newContext(nil, []string{"p.proto"}, []descriptor.RemoteServiceInfo{remoteX})

	out, err := gen.Run([]descriptor.File{{Package: "p", Name: "p.proto"}}, ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p_workload.go", out[0].Name)
	assert.True(t, ctx.HasLocalWorkload())
}

// Scenario C: a file matching no strategy is skipped without error.
func TestRun_UnclassifiedFileIsSkipped(t *testing.T) {
	gen := New(emit.NewGoEmitter(), nil)
	ctx := newContext(nil, nil, nil)

	out, err := gen.Run([]descriptor.File{{Package: "p", Name: "p.proto"}}, ctx)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, ctx.HasLocalWorkload())
}

// Scenario D: nothing local anywhere, remote services present: exactly one
// fallback artifact referencing the whole catalog.
func TestRun_FallbackFiresOnce(t *testing.T) {
	gen := New(emit.NewGoEmitter(), nil)
	ctx := newContext(nil, nil, []descriptor.RemoteServiceInfo{remoteX, remoteY})

	files := []descriptor.File{
		{Package: "a", Name: "a.proto"},
		{Package: "b", Name: "b.proto"},
	}

	out, err := gen.Run(files, ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "default_client_workload.go", out[0].Name)
	assert.Contains(t, out[0].Content, "acme+X")
	assert.Contains(t, out[0].Content, "acme+Y")
}

// Scenario E: a remote file with two services yields one client-extension
// artifact per service and leaves the local-workload flag untouched.
func TestRun_RemoteFileWithServices(t *testing.T) {
	gen := New(emit.NewGoEmitter(), nil)
	ctx := newContext(map[string]string{"dep.proto": "acme+Dep"}, nil, nil)

	files := []descriptor.File{{
		Package: "dep",
		Name:    "dep.proto",
		Services: []descriptor.Service{
			{Name: "First", Methods: []descriptor.Method{method("A")}},
			{Name: "Second", Methods: []descriptor.Method{method("B")}},
		},
	}}

	out, err := gen.Run(files, ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "first_remote_ext.go", out[0].Name)
	assert.Equal(t, "second_remote_ext.go", out[1].Name)
	assert.False(t, ctx.HasLocalWorkload())
}

func TestRun_NoFallbackWhenLocalServiceExists(t *testing.T) {
	gen := New(emit.NewGoEmitter(), nil)
	ctx := newContext(nil, nil, []descriptor.RemoteServiceInfo{remoteX})

	files := []descriptor.File{{
		Package:  "p",
		Name:     "p.proto",
		Services: []descriptor.Service{{Name: "S", Methods: []descriptor.Method{method("M")}}},
	}}

	out, err := gen.Run(files, ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p_service_actor.go", out[0].Name)
}

// A missing package name falls back to the service name for artifact naming.
func TestRun_MissingPackageUsesServiceName(t *testing.T) {
	gen := New(emit.NewGoEmitter(), nil)
	ctx := newContext(nil, nil, nil)

	files := []descriptor.File{{
		Name:     "anon.proto",
		Services: []descriptor.Service{{Name: "EchoService", Methods: []descriptor.Method{method("M")}}},
	}}

	out, err := gen.Run(files, ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "echo_service_service_actor.go", out[0].Name)
}

// Mixed run exercising all three per-file strategies plus a skipped file.
func TestRun_MixedFiles(t *testing.T) {
	gen := New(emit.NewGoEmitter(), nil)
	ctx := newContext(
		map[string]string{"dep.proto": "acme+Dep"},
		[]string{"shell.proto"},
		[]descriptor.RemoteServiceInfo{remoteX},
	)

	files := []descriptor.File{
		{Package: "dep", Name: "dep.proto", Services: []descriptor.Service{{Name: "Dep", Methods: []descriptor.Method{method("D")}}}},
		{Package: "shell", Name: "shell.proto"},
		{Package: "srv", Name: "srv.proto", Services: []descriptor.Service{{Name: "Srv", Methods: []descriptor.Method{method("S")}}}},
		{Package: "ignored", Name: "ignored.proto"},
	}

	out, err := gen.Run(files, ctx)
	require.NoError(t, err)

	var names []string
	for _, a := range out {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"dep_remote_ext.go", "shell_workload.go", "srv_service_actor.go"}, names)
	assert.True(t, ctx.HasLocalWorkload())
}

// Two identical runs yield byte-identical artifacts and the same flag.
func TestRun_Deterministic(t *testing.T) {
	files := []descriptor.File{
		{Package: "dep", Name: "dep.proto", Services: []descriptor.Service{{Name: "Dep", Methods: []descriptor.Method{method("D")}}}},
		{Package: "srv", Name: "srv.proto", Services: []descriptor.Service{{Name: "Srv", Methods: []descriptor.Method{method("S")}}}},
	}
	remote := map[string]string{"dep.proto": "acme+Dep"}
	remotes := []descriptor.RemoteServiceInfo{remoteX, remoteY}

	run := func() ([]descriptor.GeneratedFile, bool) {
		ctx := newContext(remote, nil, remotes)
		out, err := New(emit.NewGoEmitter(), nil).Run(files, ctx)
		require.NoError(t, err)
		return out, ctx.HasLocalWorkload()
	}

	first, firstFlag := run()
	second, secondFlag := run()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, firstFlag, secondFlag)
}

type failingEmitter struct {
	emit.Emitter
	err error
}

func (f failingEmitter) EmitLocalActorCode(pkg, fileName, serviceName string, methods []descriptor.Method, remotes []descriptor.RemoteServiceInfo) (descriptor.GeneratedFile, error) {
	return descriptor.GeneratedFile{}, f.err
}

func TestRun_EmitterFailureAbortsRun(t *testing.T) {
	boom := errors.New("unrenderable method shape")
	gen := New(failingEmitter{Emitter: emit.NewGoEmitter(), err: boom}, nil)
	ctx := newContext(nil, nil, nil)

	files := []descriptor.File{{
		Package:  "p",
		Name:     "p.proto",
		Services: []descriptor.Service{{Name: "S", Methods: []descriptor.Method{method("M")}}},
	}}

	out, err := gen.Run(files, ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.Contains(err.Error(), "LocalService"))
	assert.Nil(t, out)
}
