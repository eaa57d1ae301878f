package generate

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"actorgen/internal/config"
	"actorgen/internal/descriptor"
)

// Respond runs the full plugin pipeline for one compiler request: parse the
// parameter string, load the manifest, classify and generate, and wrap the
// artifacts in a CodeGeneratorResponse.
func (g *Generator) Respond(req *pluginpb.CodeGeneratorRequest) (*pluginpb.CodeGeneratorResponse, error) {
	params, err := config.ParseParams(req.GetParameter())
	if err != nil {
		return nil, fmt.Errorf("plugin parameter: %w", err)
	}
	manifest, err := config.Resolve(params)
	if err != nil {
		return nil, err
	}

	ctx := ContextFromManifest(manifest)
	artifacts, err := g.Run(descriptor.FilesFromRequest(req), ctx)
	if err != nil {
		return nil, err
	}
	return Response(artifacts), nil
}

// Response converts artifacts to the plugin wire shape, preserving order.
func Response(artifacts []descriptor.GeneratedFile) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}
	for _, a := range artifacts {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(a.Name),
			Content: proto.String(a.Content),
		})
	}
	return resp
}

// ErrorResponse wraps a generation failure in the plugin wire shape so protoc
// reports it instead of this process writing garbage to stdout.
func ErrorResponse(err error) *pluginpb.CodeGeneratorResponse {
	return &pluginpb.CodeGeneratorResponse{Error: proto.String(err.Error())}
}
