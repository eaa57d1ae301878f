package descriptor

import (
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// FromProto converts a single file descriptor proto into the model.
func FromProto(fd *descriptorpb.FileDescriptorProto) File {
	f := File{
		Package: fd.GetPackage(),
		Name:    fd.GetName(),
	}
	for _, svc := range fd.GetService() {
		f.Services = append(f.Services, Service{
			Name:    svc.GetName(),
			Methods: svc.GetMethod(),
		})
	}
	return f
}

// FilesFromRequest converts every file descriptor in a compiler request,
// preserving request order. The request includes both generation targets and
// their transitive imports; classification decides what each one yields.
func FilesFromRequest(req *pluginpb.CodeGeneratorRequest) []File {
	files := make([]File, 0, len(req.GetProtoFile()))
	for _, fd := range req.GetProtoFile() {
		files = append(files, FromProto(fd))
	}
	return files
}

// FilesFromSet converts a serialized descriptor set, preserving order.
func FilesFromSet(set *descriptorpb.FileDescriptorSet) []File {
	files := make([]File, 0, len(set.GetFile()))
	for _, fd := range set.GetFile() {
		files = append(files, FromProto(fd))
	}
	return files
}
