// Package ttlconfig loads a YAML-described table of Turtle-family
// parsing scenarios, following aretext/config's thin YAML-backed
// settings struct pattern: a test fixture format, not a library API.
package ttlconfig

import (
	"gopkg.in/yaml.v3"
)

// Case is one table-driven reader scenario: a document in a given
// syntax, and the number of statements a correct parse should produce.
type Case struct {
	Name      string `yaml:"name"`
	Syntax    string `yaml:"syntax"`
	Document  string `yaml:"document"`
	WantCount int    `yaml:"want_count"`
	WantLax   bool   `yaml:"want_lax"`
}

// Suite is a named table of Cases, the unit a fixture file describes.
type Suite struct {
	Cases []Case `yaml:"cases"`
}

// Load parses data as a YAML-encoded Suite.
func Load(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
