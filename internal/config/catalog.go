package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/dashfetch/internal/domain"
)

type catalogFile struct {
	Resources []domain.ResourceRequest `yaml:"resources"`
}

// LoadCatalog reads resource definitions from a YAML file, for pointing the
// fetcher at upstreams whose paths differ from the defaults. The catalog
// must define each dashboard resource exactly once.
func LoadCatalog(path string) ([]domain.ResourceRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validateCatalog(cf.Resources); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cf.Resources, nil
}

func validateCatalog(reqs []domain.ResourceRequest) error {
	seen := make(map[domain.ResourceName]bool, len(reqs))
	for _, r := range reqs {
		if !r.Name.Known() {
			return fmt.Errorf("unknown resource %q", r.Name)
		}
		if seen[r.Name] {
			return fmt.Errorf("resource %q listed twice", r.Name)
		}
		if r.Path == "" {
			return fmt.Errorf("resource %q has no path", r.Name)
		}
		switch r.Shape {
		case domain.ShapeRecord, domain.ShapeList:
		default:
			return fmt.Errorf("resource %q has invalid shape %q", r.Name, r.Shape)
		}
		seen[r.Name] = true
	}
	for _, name := range []domain.ResourceName{domain.ResourceUser, domain.ResourcePosts, domain.ResourceTodos} {
		if !seen[name] {
			return fmt.Errorf("resource %q missing", name)
		}
	}
	return nil
}
