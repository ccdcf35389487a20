package emit

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"

	tariffconv "github.com/reoring/tariffconv"
)

type jsonEncoder struct{}

// JSON returns an Encoder writing two-space indented JSON with object keys in
// declaration order.
func JSON() Encoder { return jsonEncoder{} }

func (jsonEncoder) Format() tariffconv.Format { return tariffconv.FormatJSON }

func (jsonEncoder) Encode(tree any) ([]byte, error) {
	v, err := toJSON(tree, "")
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, encodeIssue(tariffconv.FormatJSON, "/", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, encodeIssue(tariffconv.FormatJSON, "/", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// orderedObject marshals Fields as a JSON object without sorting keys.
type orderedObject []jsonField

type jsonField struct {
	key   string
	value any
}

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func toJSON(v any, path string) (any, error) {
	switch x := v.(type) {
	case tariffconv.Fields:
		out := make(orderedObject, 0, len(x))
		for _, f := range x {
			cv, err := toJSON(f.Value, path+"/"+f.Key)
			if err != nil {
				return nil, err
			}
			out = append(out, jsonField{key: f.Key, value: cv})
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(x))
		for i, e := range x {
			cv, err := toJSON(e, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil
	case string, bool, uint32, uint64, int, int64, nil:
		return x, nil
	}
	return nil, encodeIssue(tariffconv.FormatJSON, rootIfEmpty(path), unsupported(v))
}

func rootIfEmpty(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
