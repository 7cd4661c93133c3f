package policy

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlDecision struct {
	Success bool `yaml:"success"`
	Error   bool `yaml:"error"`
}

type yamlRule struct {
	Pattern  string                  `yaml:"pattern"`
	Decision *yamlDecision           `yaml:"decision"`
	Methods  map[string]yamlDecision `yaml:"methods"`
	Fallback *yamlDecision           `yaml:"fallback"`
}

type yamlTable struct {
	Rules []yamlRule `yaml:"rules"`
}

// Load reads a rule table from YAML, replacing the built-in defaults. Rule
// order in the file is match order.
func Load(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}

	var doc yamlTable
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}

	rules := make([]Rule, 0, len(doc.Rules))
	for _, yr := range doc.Rules {
		if yr.Pattern == "" {
			return nil, fmt.Errorf("policy rule without pattern")
		}
		rule := Rule{Pattern: yr.Pattern}
		if yr.Decision != nil {
			rule.Decision = &Decision{ShowSuccess: yr.Decision.Success, ShowError: yr.Decision.Error}
		}
		if len(yr.Methods) > 0 {
			rule.Methods = make(map[string]Decision, len(yr.Methods))
			for m, d := range yr.Methods {
				rule.Methods[strings.ToUpper(m)] = Decision{ShowSuccess: d.Success, ShowError: d.Error}
			}
		}
		if yr.Fallback != nil {
			rule.Fallback = &Decision{ShowSuccess: yr.Fallback.Success, ShowError: yr.Fallback.Error}
		}
		rules = append(rules, rule)
	}

	return New(rules), nil
}

// LoadFile loads a rule table from a YAML file on disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open policy file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
