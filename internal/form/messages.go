// Package form turns field validation errors into display messages for the
// product edit form.
package form

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

// Rule pairs an error code with the message shown for it.
type Rule struct {
	Code    string
	Message string
}

// FieldMessages lists the rules of one field in priority order.
type FieldMessages struct {
	Field string
	Rules []Rule
}

// Table is the ordered message configuration of a form.
type Table []FieldMessages

// Active is the set of error codes currently raised, keyed by field name.
type Active map[string]map[string]bool

// Add marks code as active for field.
func (a Active) Add(field, code string) {
	codes, ok := a[field]
	if !ok {
		codes = make(map[string]bool)
		a[field] = codes
	}
	codes[code] = true
}

// Has reports whether code is active for field.
func (a Active) Has(field, code string) bool { return a[field][code] }

// Process returns, for every field with an active configured code, the message
// of its first active rule. Fields without one are left out.
func (t Table) Process(active Active) map[string]string {
	out := make(map[string]string)
	for _, f := range t {
		for _, r := range f.Rules {
			if active.Has(f.Field, r.Code) {
				out[f.Field] = r.Message
				break
			}
		}
	}
	return out
}

// Message returns the configured message for field and code.
func (t Table) Message(field, code string) (string, bool) {
	for _, f := range t {
		if f.Field != field {
			continue
		}
		for _, r := range f.Rules {
			if r.Code == code {
				return r.Message, true
			}
		}
	}
	return "", false
}

// DefaultTable returns the embedded product form messages.
func DefaultTable() Table {
	t, err := ParseTable(defaultMessages)
	if err != nil {
		panic(fmt.Sprintf("form: embedded messages: %v", err))
	}
	return t
}

// LoadTable reads a message table from path. An empty path yields DefaultTable.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("form: read messages %s: %w", path, err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML mapping of field -> (code -> message), keeping the
// document order of fields and codes.
func ParseTable(data []byte) (Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("form: parse messages: %w", err)
	}
	if len(doc.Content) == 0 {
		return Table{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("form: messages must be a mapping of fields")
	}
	t := make(Table, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("form: field %q (line %d): expected a mapping of codes", key.Value, val.Line)
		}
		f := FieldMessages{Field: key.Value, Rules: make([]Rule, 0, len(val.Content)/2)}
		for j := 0; j+1 < len(val.Content); j += 2 {
			code, msg := val.Content[j], val.Content[j+1]
			if msg.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("form: field %q code %q (line %d): message must be a string", key.Value, code.Value, msg.Line)
			}
			f.Rules = append(f.Rules, Rule{Code: code.Value, Message: msg.Value})
		}
		t = append(t, f)
	}
	return t, nil
}
