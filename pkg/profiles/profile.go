package profiles

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile is a named declarative document describing target paths and
// packages for a platform or role. Profiles are loaded from YAML files
// under the profiles directory and merged into an effective descriptor.
type Profile struct {
	OS             string                            `yaml:"os"`
	PackageManager string                            `yaml:"package_manager"`
	ConfigPaths    *ConfigPaths                      `yaml:"config_paths"`
	Overrides      map[string]map[string]interface{} `yaml:"overrides"`

	// Packages and ZshPlugins are consumed by the tools collaborator,
	// not by the reconciliation engine. They ride along through the merge.
	Packages   *PackageSet `yaml:"packages"`
	ZshPlugins []string    `yaml:"zsh_plugins"`
}

// ConfigPaths maps config names to target filesystem paths while
// preserving document order. Iteration order drives conflict detection
// and deployment, so it must be deterministic: base-profile order with
// overlay keys overridden in place or appended.
type ConfigPaths struct {
	names   []string
	targets map[string]string
}

// NewConfigPaths returns an empty ordered mapping
func NewConfigPaths() *ConfigPaths {
	return &ConfigPaths{targets: make(map[string]string)}
}

// UnmarshalYAML decodes a YAML mapping node, preserving key order and
// rejecting duplicate config names.
func (c *ConfigPaths) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config_paths must be a mapping of name to target path")
	}

	c.targets = make(map[string]string, len(value.Content)/2)
	c.names = nil

	for i := 0; i+1 < len(value.Content); i += 2 {
		var name, target string
		if err := value.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("config_paths key at line %d: %w", value.Content[i].Line, err)
		}
		if err := value.Content[i+1].Decode(&target); err != nil {
			return fmt.Errorf("config_paths value for %q: %w", name, err)
		}
		if _, dup := c.targets[name]; dup {
			return fmt.Errorf("duplicate config name %q in config_paths", name)
		}
		c.names = append(c.names, name)
		c.targets[name] = target
	}

	return nil
}

// Len returns the number of entries
func (c *ConfigPaths) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Names returns the config names in document order
func (c *ConfigPaths) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Get returns the target path for a config name
func (c *ConfigPaths) Get(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	target, ok := c.targets[name]
	return target, ok
}

// Set overrides an existing entry in place, or appends a new one
func (c *ConfigPaths) Set(name, target string) {
	if c.targets == nil {
		c.targets = make(map[string]string)
	}
	if _, exists := c.targets[name]; !exists {
		c.names = append(c.names, name)
	}
	c.targets[name] = target
}

// Clone returns an independent copy
func (c *ConfigPaths) Clone() *ConfigPaths {
	if c == nil {
		return nil
	}
	clone := &ConfigPaths{
		names:   make([]string, len(c.names)),
		targets: make(map[string]string, len(c.targets)),
	}
	copy(clone.names, c.names)
	for k, v := range c.targets {
		clone.targets[k] = v
	}
	return clone
}

// PackageSet holds the packages field of a profile, which is either a
// flat list or a mapping of group name to list (Linux profiles group
// packages under keys like "common").
type PackageSet struct {
	grouped bool
	order   []string
	groups  map[string][]string
	flat    []string
}

// UnmarshalYAML accepts either a sequence or a mapping of sequences
func (p *PackageSet) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		p.grouped = false
		return value.Decode(&p.flat)
	case yaml.MappingNode:
		p.grouped = true
		p.groups = make(map[string][]string, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			var group string
			if err := value.Content[i].Decode(&group); err != nil {
				return err
			}
			var pkgs []string
			if err := value.Content[i+1].Decode(&pkgs); err != nil {
				return fmt.Errorf("packages group %q: %w", group, err)
			}
			if _, dup := p.groups[group]; !dup {
				p.order = append(p.order, group)
			}
			p.groups[group] = pkgs
		}
		return nil
	default:
		return fmt.Errorf("packages must be a list or a mapping of group to list")
	}
}

// Grouped reports whether packages were declared as named groups
func (p *PackageSet) Grouped() bool {
	return p != nil && p.grouped
}

// Group returns the packages declared under a named group
func (p *PackageSet) Group(name string) []string {
	if p == nil || !p.grouped {
		return nil
	}
	return p.groups[name]
}

// All returns every package in declaration order, flattening groups
func (p *PackageSet) All() []string {
	if p == nil {
		return nil
	}
	if !p.grouped {
		out := make([]string, len(p.flat))
		copy(out, p.flat)
		return out
	}
	var out []string
	for _, group := range p.order {
		out = append(out, p.groups[group]...)
	}
	return out
}

// merge stacks an overlay package set on top of this one. Grouped sets
// merge group-by-group with the overlay winning; any other combination
// is replaced wholesale, matching the general merge rule for
// non-mapping values.
func (p *PackageSet) merge(overlay *PackageSet) *PackageSet {
	if overlay == nil {
		return p
	}
	if p == nil || !p.grouped || !overlay.grouped {
		return overlay
	}

	merged := &PackageSet{
		grouped: true,
		groups:  make(map[string][]string, len(p.groups)+len(overlay.groups)),
	}
	merged.order = append(merged.order, p.order...)
	for name, pkgs := range p.groups {
		merged.groups[name] = pkgs
	}
	for _, name := range overlay.order {
		if _, exists := merged.groups[name]; !exists {
			merged.order = append(merged.order, name)
		}
		merged.groups[name] = overlay.groups[name]
	}
	return merged
}
