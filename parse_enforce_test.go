package tariffconv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	tariffconv "github.com/reoring/tariffconv"
)

// treeSchema captures the decoded any tree for inspection.
type treeSchema struct{}

func (treeSchema) Parse(ctx context.Context, v any) (any, error)  { return v, nil }
func (treeSchema) TypeCheck(ctx context.Context, v any) error     { return nil }
func (treeSchema) ValidateValue(ctx context.Context, v any) error { return nil }
func (treeSchema) Encode(ctx context.Context, v any) (any, error) { return v, nil }

func firstIssue(t *testing.T, err error) tariffconv.Issue {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	iss, ok := tariffconv.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues error, got: %v", err)
	}
	return iss[0]
}

func TestParseFrom_DuplicateKey_DefaultError(t *testing.T) {
	_, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.JSONBytes([]byte(`{"a":1,"a":2}`)))
	it := firstIssue(t, err)
	if it.Code != tariffconv.CodeDuplicateKey || it.Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got: %+v", it)
	}
}

func TestParseFrom_DuplicateKey_NestedPath(t *testing.T) {
	_, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.JSONBytes([]byte(`{"gifts":[{"id":1,"id":2}]}`)))
	it := firstIssue(t, err)
	if it.Code != tariffconv.CodeDuplicateKey || it.Path != "/gifts/0/id" {
		t.Fatalf("expected duplicate_key at /gifts/0/id, got: %+v", it)
	}
}

func TestParseFrom_DuplicateKey_Ignored(t *testing.T) {
	opt := tariffconv.ParseOpt{Strictness: tariffconv.Strictness{OnDuplicateKey: tariffconv.Ignore}}
	v, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.JSONBytes([]byte(`{"a":1,"a":2}`)), opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m := v.(map[string]any); m["a"] != json.Number("2") {
		t.Fatalf("expected last value to win, got %v", m["a"])
	}
}

func TestParseFrom_MaxDepth(t *testing.T) {
	opt := tariffconv.ParseOpt{MaxDepth: 2}
	_, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.JSONBytes([]byte(`{"a":{"b":{"c":1}}}`)), opt)
	it := firstIssue(t, err)
	if it.Code != tariffconv.CodeParseError || it.Path != "/a/b" {
		t.Fatalf("expected parse_error at /a/b, got: %+v", it)
	}
}

func TestParseFrom_TrailingData(t *testing.T) {
	_, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.JSONBytes([]byte(`{"a":1} {"b":2}`)))
	if it := firstIssue(t, err); it.Code != tariffconv.CodeParseError {
		t.Fatalf("expected parse_error, got %+v", it)
	}
}

func TestParseFrom_Truncated(t *testing.T) {
	_, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.JSONBytes([]byte(`{"a":[1,2`)))
	if it := firstIssue(t, err); it.Code != tariffconv.CodeParseError {
		t.Fatalf("expected parse_error, got %+v", it)
	}
}

func TestParseReader_MaxBytes(t *testing.T) {
	opt := tariffconv.DefaultParseOpt()
	opt.MaxBytes = 4
	_, err := tariffconv.ParseReader[any](context.Background(), treeSchema{}, tariffconv.FormatJSON, bytes.NewReader([]byte(`{"a":1}`)), opt)
	if it := firstIssue(t, err); it.Code != tariffconv.CodeTruncated {
		t.Fatalf("expected truncated, got %+v", it)
	}
}

func TestYAMLAndTOMLSources_NormalizeTree(t *testing.T) {
	ctx := context.Background()
	y, err := tariffconv.ParseFrom[any](ctx, treeSchema{}, tariffconv.YAMLBytes([]byte("a: 1\nb: [x, y]\nc: 1.0\n")))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	m := y.(map[string]any)
	if m["a"] != json.Number("1") {
		t.Fatalf("yaml int not normalized: %#v", m["a"])
	}
	if m["c"] != json.Number("1.0") {
		t.Fatalf("yaml float should keep its fraction marker: %v", m["c"])
	}
	if arr := m["b"].([]any); len(arr) != 2 || arr[0] != "x" {
		t.Fatalf("yaml array: %#v", m["b"])
	}

	tm, err := tariffconv.ParseFrom[any](ctx, treeSchema{}, tariffconv.TOMLBytes([]byte("a = 1\n[[g]]\nid = 1\n[[g]]\nid = 2\n")))
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	g := tm.(map[string]any)["g"].([]any)
	if len(g) != 2 {
		t.Fatalf("toml array of tables not flattened: %#v", g)
	}
}

func TestSourceFor_DecodeErrorsSurfaceAsIssues(t *testing.T) {
	src, err := tariffconv.SourceFor(tariffconv.FormatTOML, []byte("a = "))
	if err != nil {
		t.Fatalf("SourceFor: %v", err)
	}
	_, perr := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, src)
	if it := firstIssue(t, perr); it.Code != tariffconv.CodeParseError {
		t.Fatalf("expected parse_error, got %+v", it)
	}
	if _, err := tariffconv.SourceFor("xml", nil); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]tariffconv.Format{"JSON": tariffconv.FormatJSON, "yml": tariffconv.FormatYAML, " toml ": tariffconv.FormatTOML} {
		got, err := tariffconv.ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if f, ok := tariffconv.FormatFromPath("testdata/request.yaml"); !ok || f != tariffconv.FormatYAML {
		t.Fatalf("FormatFromPath: %q %v", f, ok)
	}
	if _, ok := tariffconv.FormatFromPath("request"); ok {
		t.Fatalf("expected no format for extensionless path")
	}
}

// sliceSource replays a fixed token list, standing in for a caller-supplied Source.
type sliceSource struct {
	toks []tariffconv.Token
	pos  int
}

func (s *sliceSource) NextToken() (tariffconv.Token, error) {
	if s.pos >= len(s.toks) {
		return tariffconv.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}
func (s *sliceSource) Location() int64 { return -1 }

func TestParseFrom_CustomSourceIsEnforced(t *testing.T) {
	src := &sliceSource{toks: []tariffconv.Token{
		{Kind: tariffconv.TokenBeginObject},
		{Kind: tariffconv.TokenKey, String: "a"},
		{Kind: tariffconv.TokenNumber, Number: "1"},
		{Kind: tariffconv.TokenKey, String: "a"},
		{Kind: tariffconv.TokenBool, Bool: true},
		{Kind: tariffconv.TokenEndObject},
	}}
	_, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, src)
	if it := firstIssue(t, err); it.Code != tariffconv.CodeDuplicateKey || it.Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got %+v", it)
	}

	src = &sliceSource{toks: []tariffconv.Token{
		{Kind: tariffconv.TokenBeginArray},
		{Kind: tariffconv.TokenString, String: "x"},
		{Kind: tariffconv.TokenNull},
		{Kind: tariffconv.TokenEndArray},
	}}
	v, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arr := v.([]any); len(arr) != 2 || arr[0] != "x" || arr[1] != nil {
		t.Fatalf("unexpected tree: %#v", v)
	}
}

type failingReader struct{ after []byte }

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.after) > 0 {
		n := copy(p, f.after)
		f.after = f.after[n:]
		return n, nil
	}
	return 0, errors.New("disk on fire")
}

func TestParseReader_ReadFailureIsIO(t *testing.T) {
	for _, f := range []tariffconv.Format{tariffconv.FormatJSON, tariffconv.FormatYAML} {
		_, err := tariffconv.ParseReader[any](context.Background(), treeSchema{}, f, &failingReader{after: []byte(`{"a":`)})
		if it := firstIssue(t, err); it.Code != tariffconv.CodeIO {
			t.Fatalf("%s: expected io_error, got %+v", f, it)
		}
		if tariffconv.CategoryOf(err) != tariffconv.CategoryIO {
			t.Fatalf("%s: expected io category", f)
		}
	}
}

func TestParseReader_StreamsJSONWithinCap(t *testing.T) {
	opt := tariffconv.DefaultParseOpt()
	opt.MaxBytes = 7
	v, err := tariffconv.ParseReader[any](context.Background(), treeSchema{}, tariffconv.FormatJSON, strings.NewReader(`{"a":1}`), opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(map[string]any)["a"] != json.Number("1") {
		t.Fatalf("unexpected tree: %#v", v)
	}

	opt.MaxBytes = 6
	_, err = tariffconv.ParseReader[any](context.Background(), treeSchema{}, tariffconv.FormatJSON, strings.NewReader(`{"a":1} `), opt)
	if it := firstIssue(t, err); it.Code != tariffconv.CodeTruncated {
		t.Fatalf("expected truncated, got %+v", it)
	}
}

func TestYAMLBytes_TimestampsStayText(t *testing.T) {
	v, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.YAMLBytes([]byte("d: 2019-06-28\nq: \"2019-06-28\"\nn: ~\n")))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	m := v.(map[string]any)
	if m["d"] != "2019-06-28" || m["q"] != "2019-06-28" || m["n"] != nil {
		t.Fatalf("unexpected tree: %#v", m)
	}

	_, err = tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.YAMLBytes([]byte("a: 1\na: 2\n")))
	if it := firstIssue(t, err); it.Code != tariffconv.CodeParseError {
		t.Fatalf("expected parse_error for repeated yaml key, got %+v", it)
	}
}

func TestTOMLBytes_LocalTimesStayText(t *testing.T) {
	v, err := tariffconv.ParseFrom[any](context.Background(), treeSchema{}, tariffconv.TOMLBytes([]byte("dt = 2019-06-28T08:35:46\nd = 2019-06-28\nt = 08:35:46\nz = 2019-06-28T08:35:46+02:00\n")))
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	m := v.(map[string]any)
	want := map[string]any{
		"dt": "2019-06-28T08:35:46",
		"d":  "2019-06-28",
		"t":  "08:35:46",
		"z":  "2019-06-28T08:35:46+02:00",
	}
	for k, w := range want {
		if m[k] != w {
			t.Fatalf("%s = %#v, want %q", k, m[k], w)
		}
	}
}
