package migration

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// errMultipleDocuments is wrapped by ParseError when the input holds more than one YAML document.
var errMultipleDocuments = errors.New("expected a single document in the stream")

// yaml11False are the plain scalars YAML 1.1 loaders resolve to false while
// yaml.v3 keeps them as strings.
var yaml11False = map[string]struct{}{
	"no": {}, "No": {}, "NO": {},
	"off": {}, "Off": {}, "OFF": {},
}

// parse decodes the configuration for inspection only. An empty document
// decodes to a nil mapping.
func parse(config string) (map[string]interface{}, error) {
	dec := yaml.NewDecoder(strings.NewReader(config))

	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &ParseError{Err: err}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errMultipleDocuments
		}
		return nil, &ParseError{Err: err}
	}

	var raw interface{}
	if err := root.Decode(&raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if raw == nil {
		return nil, nil
	}
	doc, ok := asMapping(raw)
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("%w (got %T)", ErrNotMapping, raw)}
	}
	normalizeFalseLiterals(&root, doc)
	return doc, nil
}

// normalizeFalseLiterals maps unquoted no/off values of the inspected
// top-level keys to false so they count as absent.
func normalizeFalseLiterals(root *yaml.Node, doc map[string]interface{}) {
	n := root
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case KeyUpstreamProjectName, KeySyncedFiles, KeyFilesToSync:
		default:
			continue
		}
		if val.Kind != yaml.ScalarNode || val.Style != 0 || val.ShortTag() != "!!str" {
			continue
		}
		if _, ok := yaml11False[val.Value]; ok {
			doc[key.Value] = false
		}
	}
}

// asMapping accepts both mapping shapes yaml.v3 produces. Non-string keys
// are dropped since none of the inspected keys can match them.
func asMapping(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			if ks, ok := k.(string); ok {
				m[ks] = val
			}
		}
		return m, true
	default:
		return nil, false
	}
}
