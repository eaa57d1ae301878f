// Package config loads the generation manifest: the catalogs of remote files,
// local files, and remote services that steer per-file classification. The
// manifest is a YAML file referenced from the plugin parameter string.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"actorgen/internal/descriptor"
)

// Manifest carries the three external catalogs for one generation run.
type Manifest struct {
	// RemoteFiles maps a proto file path to the actor type implementing it
	// elsewhere, e.g. "acme/stream.proto" -> "acme+DataStreamConcurrentServer".
	RemoteFiles map[string]string `yaml:"remote_files"`

	// LocalFiles lists proto file paths explicitly owned by this target.
	LocalFiles []string `yaml:"local_files"`

	// RemoteServices is the ordered catalog of services to proxy.
	RemoteServices []RemoteService `yaml:"remote_services"`
}

// RemoteService is one remote-service catalog entry.
type RemoteService struct {
	Service   string   `yaml:"service"`
	RouteKeys []string `yaml:"route_keys"`
	ActorType string   `yaml:"actor_type"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks catalog entries for the fields classification depends on.
func (m *Manifest) Validate() error {
	for path, actorType := range m.RemoteFiles {
		if actorType == "" {
			return fmt.Errorf("remote file %q has empty actor type", path)
		}
	}
	for i, rs := range m.RemoteServices {
		if rs.Service == "" {
			return fmt.Errorf("remote_services[%d]: missing service name", i)
		}
		if rs.ActorType == "" {
			return fmt.Errorf("remote service %q: missing actor type", rs.Service)
		}
	}
	return nil
}

// RemoteServiceInfos converts the catalog into the descriptor model,
// preserving order.
func (m *Manifest) RemoteServiceInfos() []descriptor.RemoteServiceInfo {
	out := make([]descriptor.RemoteServiceInfo, 0, len(m.RemoteServices))
	for _, rs := range m.RemoteServices {
		out = append(out, descriptor.RemoteServiceInfo{
			ServiceName: rs.Service,
			RouteKeys:   rs.RouteKeys,
			ActorType:   rs.ActorType,
		})
	}
	return out
}
