package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the descriptor at path and checks that it belongs to deviceID.
func Load(deviceID, path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read device descriptor %s: %w", path, err)
	}

	d, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	if d.DeviceID != deviceID {
		return nil, &DeviceIDMismatchError{
			Path:     path,
			Expected: deviceID,
			Actual:   d.DeviceID,
		}
	}

	return d, nil
}

// Parse validates a descriptor document. path is used for error messages
// and recorded on the result.
func Parse(path string, data []byte) (*Descriptor, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ParseError{Path: path, Reason: "document is empty"}
	}

	p := &parser{path: path}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Reason: "top level must be a mapping"}
	}

	device, err := p.mapping(root, "", "Device")
	if err != nil {
		return nil, err
	}
	id, err := p.str(device, "Device", "id")
	if err != nil {
		return nil, err
	}

	prefix, err := p.str(root, "", "CompileTimeConfigPrefix")
	if err != nil {
		return nil, err
	}

	deviceConfig, err := p.entries(root, "", "DeviceConfig")
	if err != nil {
		return nil, err
	}

	networks, err := p.sequence(root, "", "Networks")
	if err != nil {
		return nil, err
	}
	if len(networks.Content) == 0 {
		return nil, p.fail("Networks", "must contain at least one network")
	}

	first := resolve(networks.Content[0])
	if first.Kind != yaml.MappingNode {
		return nil, p.fail("Networks[0]", "expected a mapping")
	}
	name, err := p.optionalStr(first, "Networks[0]", "name")
	if err != nil {
		return nil, err
	}
	networkConfig, err := p.entries(first, "Networks[0]", "config")
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		Path:                    path,
		DeviceID:                id,
		CompileTimeConfigPrefix: prefix,
		DeviceConfig:            deviceConfig,
		NetworkName:             name,
		NetworkConfig:           networkConfig,
		NetworkCount:            len(networks.Content),
	}, nil
}

// parser walks a yaml.Node tree and turns every shape problem into a
// *ParseError naming the offending field.
type parser struct {
	path string
}

func (p *parser) fail(field, reason string) *ParseError {
	return &ParseError{Path: p.path, Field: field, Reason: reason}
}

func (p *parser) field(parent *yaml.Node, parentPath, key string) (*yaml.Node, string, error) {
	fieldPath := join(parentPath, key)
	node := lookup(parent, key)
	if node == nil {
		return nil, fieldPath, p.fail(fieldPath, "missing")
	}
	return node, fieldPath, nil
}

func (p *parser) mapping(parent *yaml.Node, parentPath, key string) (*yaml.Node, error) {
	node, fieldPath, err := p.field(parent, parentPath, key)
	if err != nil {
		return nil, err
	}
	if node.Kind != yaml.MappingNode {
		return nil, p.fail(fieldPath, "expected a mapping, got "+describe(node))
	}
	return node, nil
}

func (p *parser) sequence(parent *yaml.Node, parentPath, key string) (*yaml.Node, error) {
	node, fieldPath, err := p.field(parent, parentPath, key)
	if err != nil {
		return nil, err
	}
	if node.Kind != yaml.SequenceNode {
		return nil, p.fail(fieldPath, "expected a sequence, got "+describe(node))
	}
	return node, nil
}

func (p *parser) str(parent *yaml.Node, parentPath, key string) (string, error) {
	node, fieldPath, err := p.field(parent, parentPath, key)
	if err != nil {
		return "", err
	}
	return p.scalar(node, fieldPath)
}

func (p *parser) optionalStr(parent *yaml.Node, parentPath, key string) (string, error) {
	node := lookup(parent, key)
	if node == nil {
		return "", nil
	}
	return p.scalar(node, join(parentPath, key))
}

func (p *parser) scalar(node *yaml.Node, fieldPath string) (string, error) {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		return "", p.fail(fieldPath, "expected a string, got "+describe(node))
	}
	return node.Value, nil
}

func (p *parser) entries(parent *yaml.Node, parentPath, key string) ([]ConfigEntry, error) {
	seq, err := p.sequence(parent, parentPath, key)
	if err != nil {
		return nil, err
	}

	seqPath := join(parentPath, key)
	entries := make([]ConfigEntry, 0, len(seq.Content))
	for i, item := range seq.Content {
		itemPath := fmt.Sprintf("%s[%d]", seqPath, i)
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			return nil, p.fail(itemPath, "expected a mapping, got "+describe(item))
		}

		prefix, err := p.str(item, itemPath, "compile_time_prefix")
		if err != nil {
			return nil, err
		}
		value, err := p.str(item, itemPath, "value")
		if err != nil {
			return nil, err
		}

		entries = append(entries, ConfigEntry{CompileTimePrefix: prefix, Value: value})
	}
	return entries, nil
}

// lookup returns the value node for key in a mapping, or nil.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolve(m.Content[i+1])
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return "null"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		}
		return "scalar " + n.ShortTag()
	default:
		return "unknown node"
	}
}
