package bank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a bank file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrEmptyBank is returned when a bank decodes to zero questions.
	ErrEmptyBank = errors.New("question bank is empty")

	// ErrUnknownFormat is returned for file extensions other than .json, .yaml and .yml.
	ErrUnknownFormat = errors.New("unknown bank format")
)

//go:embed sample.json
var sampleBank []byte

// document is the versioned wrapper form of a bank file.
type document struct {
	Version   int        `json:"version"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads, validates and indexes a bank file.
func Load(path string) (*Store, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	store, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	store.source = path
	return store, nil
}

// Default returns the bank bundled with the binary.
func Default() *Store {
	store, err := Parse(sampleBank, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank is invalid: %v", err))
	}
	store.source = "(built-in)"
	return store
}

// Parse decodes a bank in the given format. The bank may be a bare array
// of questions or a {version, title, questions} document.
func Parse(data []byte, format Format) (*Store, error) {
	raw := data
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		raw = converted
	} else if format != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	doc, err := decodeJSON(raw)
	if err != nil {
		return nil, err
	}
	if len(doc.Questions) == 0 {
		return nil, ErrEmptyBank
	}

	questions, err := normalize(doc.Questions)
	if err != nil {
		return nil, err
	}
	return &Store{title: doc.Title, questions: questions}, nil
}

func decodeJSON(raw []byte) (document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var questions []Question
		if err := strictDecode(trimmed, &questions); err != nil {
			return document{}, err
		}
		return document{Questions: questions}, nil
	}

	var doc document
	if err := strictDecode(trimmed, &doc); err != nil {
		return document{}, err
	}
	return doc, nil
}

func strictDecode(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse json: multiple documents are not supported")
		}
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

// yamlToJSON re-encodes a single YAML document as JSON so both formats go
// through the same schema and decoding path.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBank
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	value, err := nodeValue(&doc, false)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	out, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return out, nil
}

// nodeValue converts a YAML node into values encoding/json can marshal.
// With literal set, a numeric scalar keeps its spelling: a free-text
// answer of 007 must not turn into 7.
func nodeValue(n *yaml.Node, literal bool) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0], literal)

	case yaml.AliasNode:
		return nodeValue(n.Alias, literal)

	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeValue(item, false)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil

	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			v, err := nodeValue(val, key.Value == "correct")
			if err != nil {
				return nil, err
			}
			if key.ShortTag() == "!!merge" {
				if merged, ok := v.(map[string]any); ok {
					for mk, mv := range merged {
						if _, set := m[mk]; !set {
							m[mk] = mv
						}
					}
				}
				continue
			}
			m[key.Value] = v
		}
		return m, nil

	case yaml.ScalarNode:
		if literal {
			switch n.ShortTag() {
			case "!!int", "!!float":
				if json.Valid([]byte(n.Value)) {
					return json.Number(n.Value), nil
				}
				return n.Value, nil
			}
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, fmt.Errorf("unsupported yaml node at line %d", n.Line)
}
