package emit

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/BurntSushi/toml"

	tariffconv "github.com/reoring/tariffconv"
)

type tomlEncoder struct{}

// TOML returns an Encoder writing a TOML document. Arrays of objects become
// arrays of tables; empty arrays stay inline so the key is kept.
func TOML() Encoder { return tomlEncoder{} }

func (tomlEncoder) Format() tariffconv.Format { return tariffconv.FormatTOML }

func (tomlEncoder) Encode(tree any) ([]byte, error) {
	if _, ok := tree.(tariffconv.Fields); !ok {
		return nil, encodeIssue(tariffconv.FormatTOML, "/", errors.New("toml document root must be an object"))
	}
	v, err := toTOML(tree, "")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, encodeIssue(tariffconv.FormatTOML, "/", err)
	}
	return buf.Bytes(), nil
}

func toTOML(v any, path string) (any, error) {
	switch x := v.(type) {
	case tariffconv.Fields:
		out := make(map[string]any, len(x))
		for _, f := range x {
			cv, err := toTOML(f.Value, path+"/"+f.Key)
			if err != nil {
				return nil, err
			}
			out[f.Key] = cv
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(x))
		tables := len(x) > 0
		for i, e := range x {
			cv, err := toTOML(e, path+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			if _, ok := cv.(map[string]any); !ok {
				tables = false
			}
			out = append(out, cv)
		}
		if !tables {
			return out, nil
		}
		ts := make([]map[string]any, len(out))
		for i, e := range out {
			ts[i] = e.(map[string]any)
		}
		return ts, nil
	case string, bool, uint32, uint64, int, int64:
		return x, nil
	case nil:
		return nil, encodeIssue(tariffconv.FormatTOML, rootIfEmpty(path), errors.New("toml has no null"))
	}
	return nil, encodeIssue(tariffconv.FormatTOML, rootIfEmpty(path), unsupported(v))
}
