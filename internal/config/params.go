package config

import (
	"fmt"
	"strings"
)

// Params is the parsed plugin parameter string. protoc joins repeated
// --actor_opt values with commas; each element is key=value.
type Params struct {
	// ManifestPath points at the YAML manifest (key "manifest").
	ManifestPath string
	// LocalFiles collects "local=<path>" entries that supplement the
	// manifest's local file set.
	LocalFiles []string
}

// ParseParams parses a plugin parameter string. Unknown keys are rejected so
// typos fail the run instead of silently changing classification.
func ParseParams(parameter string) (Params, error) {
	var p Params
	if parameter == "" {
		return p, nil
	}
	for _, part := range strings.Split(parameter, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return Params{}, fmt.Errorf("malformed parameter %q: want key=value", part)
		}
		switch key {
		case "manifest":
			p.ManifestPath = value
		case "local":
			p.LocalFiles = append(p.LocalFiles, value)
		default:
			return Params{}, fmt.Errorf("unknown parameter %q", key)
		}
	}
	return p, nil
}

// Resolve loads the manifest named by the params (an empty manifest when none
// is given) and folds in any parameter-supplied local files.
func Resolve(p Params) (*Manifest, error) {
	var m *Manifest
	if p.ManifestPath != "" {
		loaded, err := Load(p.ManifestPath)
		if err != nil {
			return nil, err
		}
		m = loaded
	} else {
		m = &Manifest{}
	}
	m.LocalFiles = append(m.LocalFiles, p.LocalFiles...)
	return m, nil
}
