// protoc-gen-actor generates actor-framework Go source from proto service
// definitions. Run under protoc it speaks the standard plugin protocol on
// stdin/stdout; the generate subcommand replays a saved descriptor set for
// debugging without protoc in the loop.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"actorgen/internal/config"
	"actorgen/internal/descriptor"
	"actorgen/internal/emit"
	"actorgen/internal/generate"
	"actorgen/internal/logging"
)

const version = "0.3.0"

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "protoc-gen-actor",
	Short: "protoc plugin generating actor-framework Go code",
	Long: `protoc-gen-actor decides, per proto file, which actor artifacts to emit:
remote client extensions for dependency files, full actor servers for files
that define services, workload shells for empty local files, and a fallback
client workload when nothing local exists at all.

Invoked by protoc it reads a CodeGeneratorRequest on stdin and writes a
CodeGeneratorResponse on stdout. All diagnostics go to stderr.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlugin(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runPlugin(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(data, req); err != nil {
		return fmt.Errorf("unmarshalling request: %w", err)
	}

	gen := generate.New(emit.NewGoEmitter(), logger)
	resp, err := gen.Respond(req)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		resp = generate.ErrorResponse(err)
	}

	wire, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshalling response: %w", err)
	}
	if _, err := out.Write(wire); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

var (
	descriptorSetPath string
	manifestPath      string
	localFiles        []string
	outDir            string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate from a saved FileDescriptorSet (protoc --descriptor_set_out)",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(descriptorSetPath)
		if err != nil {
			return fmt.Errorf("reading descriptor set: %w", err)
		}
		set := &descriptorpb.FileDescriptorSet{}
		if err := proto.Unmarshal(data, set); err != nil {
			return fmt.Errorf("unmarshalling descriptor set: %w", err)
		}

		manifest, err := config.Resolve(config.Params{
			ManifestPath: manifestPath,
			LocalFiles:   localFiles,
		})
		if err != nil {
			return err
		}

		gen := generate.New(emit.NewGoEmitter(), logger)
		artifacts, err := gen.Run(descriptor.FilesFromSet(set), generate.ContextFromManifest(manifest))
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
		for _, a := range artifacts {
			path := filepath.Join(outDir, a.Name)
			if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			logger.Info("wrote artifact", zap.String("path", path))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the plugin version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "protoc-gen-actor %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	generateCmd.Flags().StringVar(&descriptorSetPath, "descriptor-set", "", "path to a serialized FileDescriptorSet")
	generateCmd.Flags().StringVar(&manifestPath, "manifest", "", "path to the generation manifest (YAML)")
	generateCmd.Flags().StringArrayVar(&localFiles, "local", nil, "proto file to mark as local (repeatable)")
	generateCmd.Flags().StringVar(&outDir, "out", ".", "output directory for artifacts")
	_ = generateCmd.MarkFlagRequired("descriptor-set")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
