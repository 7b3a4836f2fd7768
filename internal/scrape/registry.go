package scrape

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry holds the configuration for all cutoff data sources.
type Registry struct {
	Sources []SourceConfig `yaml:"sources"`
}

// FetchConfig defines HTTP fetching configuration for a source.
type FetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"` // Default: 30
	MaxRetries     int `yaml:"max_retries,omitempty"`     // Default: 3
	DelaySeconds   int `yaml:"delay_seconds,omitempty"`   // Default: 2
}

// SourceConfig defines a single cutoff data source.
type SourceConfig struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Parser string `yaml:"parser"` // "collegesearch", "collegedunia"
	Active bool   `yaml:"active"`

	Fetch FetchConfig `yaml:"fetch,omitempty"`
}

// LoadRegistry returns the source registry. A readable file at path
// overrides the embedded config/sources.yaml, so local runs can point at
// alternate sources without rebuilding.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		data, err = sourcesYAML.ReadFile("config/sources.yaml")
		if err != nil {
			return nil, err
		}
	}

	// Expand environment variables within the YAML content (e.g. ${SOURCE_URL})
	expanded := os.ExpandEnv(string(data))

	var reg Registry
	if err := yaml.Unmarshal([]byte(expanded), &reg); err != nil {
		return nil, err
	}

	return &reg, nil
}

// Active returns the sources flagged active, in registry order.
func (r *Registry) Active() []SourceConfig {
	var out []SourceConfig
	for _, src := range r.Sources {
		if src.Active {
			out = append(out, src)
		}
	}
	return out
}

// ParserFor returns the parser implementation named by a source config.
func ParserFor(cfg SourceConfig) (Parser, error) {
	switch cfg.Parser {
	case "collegesearch":
		return &CollegeSearchParser{}, nil
	case "collegedunia":
		return &CollegeDuniaParser{}, nil
	default:
		return nil, fmt.Errorf("unknown parser %q for source %s", cfg.Parser, cfg.ID)
	}
}
