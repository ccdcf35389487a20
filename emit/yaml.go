package emit

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"

	tariffconv "github.com/reoring/tariffconv"
)

type yamlEncoder struct{}

// YAML returns an Encoder writing a YAML document with the encoder's default
// settings and object keys in declaration order.
func YAML() Encoder { return yamlEncoder{} }

func (yamlEncoder) Format() tariffconv.Format { return tariffconv.FormatYAML }

func (yamlEncoder) Encode(tree any) ([]byte, error) {
	n, err := toYAMLNode(tree, "")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(n); err != nil {
		return nil, encodeIssue(tariffconv.FormatYAML, "/", err)
	}
	if err := enc.Close(); err != nil {
		return nil, encodeIssue(tariffconv.FormatYAML, "/", err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v any, path string) (*yaml.Node, error) {
	switch x := v.(type) {
	case tariffconv.Fields:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range x {
			cv, err := toYAMLNode(f.Value, path+"/"+f.Key)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}, cv)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(x) == 0 {
			n.Style = yaml.FlowStyle
		}
		for i, e := range x {
			cv, err := toYAMLNode(e, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, cv)
		}
		return n, nil
	case string, bool, uint32, uint64, int, int64, nil:
		// Node.Encode picks the tag and quotes strings that would read back
		// as another type.
		n := &yaml.Node{}
		if err := n.Encode(x); err != nil {
			return nil, encodeIssue(tariffconv.FormatYAML, rootIfEmpty(path), err)
		}
		return n, nil
	}
	return nil, encodeIssue(tariffconv.FormatYAML, rootIfEmpty(path), unsupported(v))
}
