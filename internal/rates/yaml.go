package rates

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// FromYAML loads the default tables and applies overrides from the given
// YAML file. Overrides replace whole entries per key; a file that only lists
// a "tech" niche changes tech and leaves every other niche at its default.
// The merged tables are validated before being returned.
func FromYAML(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rates: read override file %s", path)
	}

	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, eris.Wrapf(err, "rates: parse override file %s", path)
	}

	t := Default()
	for key, cfg := range overrides.Niches {
		t.Niches[key] = cfg
	}
	for key, cfg := range overrides.Locations {
		t.Locations[key] = cfg
	}
	for key, cfg := range overrides.Platforms {
		t.Platforms[key] = cfg
	}

	if err := t.Validate(); err != nil {
		return nil, eris.Wrapf(err, "rates: override file %s", path)
	}
	return t, nil
}
