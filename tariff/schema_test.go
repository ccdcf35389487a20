package tariff

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	tariffconv "github.com/reoring/tariffconv"
)

func loadRequest(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/request.json")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	return data
}

func requestTree(t *testing.T) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(string(loadRequest(t))))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("decode testdata: %v", err)
	}
	return m
}

func TestDecodeRequest_Scenario(t *testing.T) {
	ctx := context.Background()
	req, err := DecodeRequest(ctx, tariffconv.JSONBytes(loadRequest(t)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Kind != Success {
		t.Fatalf("kind: %v", req.Kind)
	}
	if req.Stream.UserID != uuid.MustParse("8d234120-0bda-49b2-b7e0-fbd3912f6cbf") {
		t.Fatalf("user_id: %v", req.Stream.UserID)
	}
	if req.Stream.ShardURL.String() != "https://n3.example.com/sapi" {
		t.Fatalf("shard_url: %v", req.Stream.ShardURL)
	}
	if req.Debug.Duration != 234*time.Millisecond {
		t.Fatalf("debug.duration: %v", req.Debug.Duration)
	}
	if len(req.Gifts) != 2 || req.Gifts[0].ID != 1 || req.Gifts[1].ID != 2 {
		t.Fatalf("gifts: %+v", req.Gifts)
	}
	if req.Stream.Settings != 45345 || req.Stream.IsPrivate {
		t.Fatalf("stream scalars: %+v", req.Stream)
	}
	if req.Stream.PublicTariff.Duration != time.Hour || req.Stream.PrivateTariff.Duration != time.Minute {
		t.Fatalf("tariff durations: %+v %+v", req.Stream.PublicTariff, req.Stream.PrivateTariff)
	}
	if !req.Debug.At.Equal(time.Date(2019, 6, 28, 8, 35, 46, 0, time.UTC)) || req.Debug.At.Location() != time.UTC {
		t.Fatalf("debug.at: %v", req.Debug.At)
	}
}

// every required key, removed one at a time, must fail at its own path
func TestDecodeRequest_MissingRequiredFields(t *testing.T) {
	paths := []string{
		"/type", "/stream", "/gifts", "/debug",
		"/stream/user_id", "/stream/is_private", "/stream/settings", "/stream/shard_url",
		"/stream/public_tariff", "/stream/private_tariff",
		"/stream/public_tariff/id", "/stream/public_tariff/price",
		"/stream/public_tariff/duration", "/stream/public_tariff/description",
		"/stream/private_tariff/client_price", "/stream/private_tariff/duration",
		"/stream/private_tariff/description",
		"/gifts/1/id", "/gifts/1/price", "/gifts/0/description",
		"/debug/duration", "/debug/at",
	}
	ctx := context.Background()
	for _, p := range paths {
		tree := requestTree(t)
		removeAt(t, tree, p)
		req, err := RequestSchema().Parse(ctx, tree)
		iss, ok := tariffconv.AsIssues(err)
		if !ok {
			t.Fatalf("%s: expected issues, got %v", p, err)
		}
		if len(iss) != 1 || iss[0].Code != tariffconv.CodeRequired || iss[0].Path != p {
			t.Fatalf("%s: expected single required issue, got %v", p, iss)
		}
		if req.Kind != 0 || req.Gifts != nil {
			t.Fatalf("%s: expected zero value on failure, got %+v", p, req)
		}
	}
}

func removeAt(t *testing.T, tree map[string]any, pointer string) {
	t.Helper()
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	var cur any = tree
	for _, p := range parts[:len(parts)-1] {
		switch c := cur.(type) {
		case map[string]any:
			cur = c[p]
		case []any:
			i := int(p[0] - '0')
			cur = c[i]
		}
	}
	delete(cur.(map[string]any), parts[len(parts)-1])
}

func TestDecodeRequest_KindTokens(t *testing.T) {
	ctx := context.Background()
	for tok, want := range map[string]Kind{"success": Success, "failure": Failure} {
		tree := requestTree(t)
		tree["type"] = tok
		req, err := RequestSchema().Parse(ctx, tree)
		if err != nil || req.Kind != want {
			t.Fatalf("%q: got %v %v", tok, req.Kind, err)
		}
		if req.Kind.String() != tok {
			t.Fatalf("String() = %q, want %q", req.Kind.String(), tok)
		}
	}
	for _, tok := range []string{"Success", "FAILURE", "ok", ""} {
		tree := requestTree(t)
		tree["type"] = tok
		_, err := RequestSchema().Parse(ctx, tree)
		iss, ok := tariffconv.AsIssues(err)
		if !ok || iss[0].Code != tariffconv.CodeInvalidEnum || iss[0].Path != "/type" {
			t.Fatalf("%q: expected invalid_enum at /type, got %v", tok, err)
		}
	}
}

func TestDecodeRequest_FieldCodecFailures(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		mutate func(m map[string]any)
		path   string
		code   string
	}{
		{func(m map[string]any) { stream(m)["user_id"] = "not-a-uuid" }, "/stream/user_id", tariffconv.CodeInvalidFormat},
		{func(m map[string]any) { stream(m)["shard_url"] = "n3.example.com" }, "/stream/shard_url", tariffconv.CodeInvalidFormat},
		{func(m map[string]any) { m["debug"].(map[string]any)["duration"] = "soon" }, "/debug/duration", tariffconv.CodeInvalidFormat},
		{func(m map[string]any) { m["debug"].(map[string]any)["at"] = "2019-06-28 08:35" }, "/debug/at", tariffconv.CodeInvalidFormat},
		{func(m map[string]any) { stream(m)["settings"] = json.Number("-1") }, "/stream/settings", tariffconv.CodeTooSmall},
		{func(m map[string]any) { stream(m)["settings"] = json.Number("4294967296") }, "/stream/settings", tariffconv.CodeOverflow},
		{func(m map[string]any) { stream(m)["is_private"] = "false" }, "/stream/is_private", tariffconv.CodeInvalidType},
		{func(m map[string]any) { m["gifts"].([]any)[1].(map[string]any)["price"] = json.Number("2.5") }, "/gifts/1/price", tariffconv.CodeInvalidType},
		{func(m map[string]any) { m["gifts"] = map[string]any{} }, "/gifts", tariffconv.CodeInvalidType},
	}
	for _, tc := range cases {
		tree := requestTree(t)
		tc.mutate(tree)
		_, err := RequestSchema().Parse(ctx, tree)
		iss, ok := tariffconv.AsIssues(err)
		if !ok || iss[0].Path != tc.path || iss[0].Code != tc.code {
			t.Fatalf("expected %s at %s, got %v", tc.code, tc.path, err)
		}
	}
}

func stream(m map[string]any) map[string]any { return m["stream"].(map[string]any) }

func TestDecodeRequest_UnknownKeysIgnoredAndEmptyGifts(t *testing.T) {
	ctx := context.Background()
	tree := requestTree(t)
	tree["extra"] = "ignored"
	stream(tree)["comment"] = json.Number("1")
	tree["gifts"] = []any{}
	req, err := RequestSchema().Parse(ctx, tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Gifts == nil || len(req.Gifts) != 0 {
		t.Fatalf("expected empty gifts, got %#v", req.Gifts)
	}
}

func TestDecodeRequest_DuplicateKeyRejected(t *testing.T) {
	data := []byte(`{"type":"success","type":"failure"}`)
	_, err := DecodeRequest(context.Background(), tariffconv.JSONBytes(data))
	iss, ok := tariffconv.AsIssues(err)
	if !ok || iss[0].Code != tariffconv.CodeDuplicateKey || iss[0].Path != "/type" {
		t.Fatalf("expected duplicate_key at /type, got %v", err)
	}
}

func TestEncodeRequest_OrderAndValues(t *testing.T) {
	ctx := context.Background()
	req, err := DecodeRequest(ctx, tariffconv.JSONBytes(loadRequest(t)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	tree, err := EncodeRequest(ctx, req)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := strings.Join(tree.Keys(), ","); got != "type,stream,gifts,debug" {
		t.Fatalf("top-level order: %s", got)
	}
	st, _ := tree.Get("stream")
	if got := strings.Join(st.(tariffconv.Fields).Keys(), ","); got != "user_id,is_private,settings,shard_url,public_tariff,private_tariff" {
		t.Fatalf("stream order: %s", got)
	}
	if v, _ := tree.Get("type"); v != "success" {
		t.Fatalf("type: %#v", v)
	}
	dbg, _ := tree.Get("debug")
	if d, _ := dbg.(tariffconv.Fields).Get("duration"); d != "234ms" {
		t.Fatalf("debug.duration: %#v", d)
	}
	if at, _ := dbg.(tariffconv.Fields).Get("at"); at != "2019-06-28T08:35:46Z" {
		t.Fatalf("debug.at: %#v", at)
	}
	if id, _ := st.(tariffconv.Fields).Get("user_id"); id != "8d234120-0bda-49b2-b7e0-fbd3912f6cbf" {
		t.Fatalf("user_id: %#v", id)
	}
}

func TestEncodeRequest_ZeroValueFails(t *testing.T) {
	_, err := EncodeRequest(context.Background(), Request{})
	iss, ok := tariffconv.AsIssues(err)
	if !ok || iss[0].Code != tariffconv.CodeEncode {
		t.Fatalf("expected encode_error, got %v", err)
	}
	if tariffconv.CategoryOf(err) != tariffconv.CategoryEncode {
		t.Fatalf("unexpected category %v", tariffconv.CategoryOf(err))
	}
}

func TestKind_StringOutsideTable(t *testing.T) {
	if s := Kind(7).String(); s != "Kind(7)" {
		t.Fatalf("unexpected %q", s)
	}
}

const tomlRequest = `type = "success"
gifts = []

[stream]
user_id = "8d234120-0bda-49b2-b7e0-fbd3912f6cbf"
is_private = false
settings = 45345
shard_url = "https://n3.example.com/sapi"

[stream.public_tariff]
id = 1
price = 100
duration = "1h"
description = "public"

[stream.private_tariff]
client_price = 250
duration = "1m"
description = "private"

[debug]
duration = "234ms"
at = %s
`

const yamlRequest = `type: success
stream:
  user_id: 8d234120-0bda-49b2-b7e0-fbd3912f6cbf
  is_private: false
  settings: 45345
  shard_url: https://n3.example.com/sapi
  public_tariff: {id: 1, price: 100, duration: 1h, description: public}
  private_tariff: {client_price: 250, duration: 1m, description: private}
gifts: []
debug:
  duration: 234ms
  at: %s
`

func TestDecodeRequest_DebugAtNeedsOffsetInEveryFormat(t *testing.T) {
	ctx := context.Background()
	utc := time.Date(2019, 6, 28, 6, 35, 46, 0, time.UTC)
	cases := []struct {
		name string
		src  tariffconv.Source
		ok   bool
	}{
		{"toml local date-time", tariffconv.TOMLBytes([]byte(fmt.Sprintf(tomlRequest, "2019-06-28T08:35:46"))), false},
		{"toml local date", tariffconv.TOMLBytes([]byte(fmt.Sprintf(tomlRequest, "2019-06-28"))), false},
		{"toml local time", tariffconv.TOMLBytes([]byte(fmt.Sprintf(tomlRequest, "08:35:46"))), false},
		{"toml offset date-time", tariffconv.TOMLBytes([]byte(fmt.Sprintf(tomlRequest, "2019-06-28T08:35:46+02:00"))), true},
		{"toml string", tariffconv.TOMLBytes([]byte(fmt.Sprintf(tomlRequest, `"2019-06-28T06:35:46Z"`))), true},
		{"yaml bare date", tariffconv.YAMLBytes([]byte(fmt.Sprintf(yamlRequest, "2019-06-28"))), false},
		{"yaml space separated", tariffconv.YAMLBytes([]byte(fmt.Sprintf(yamlRequest, "2019-06-28 08:35:46"))), false},
		{"yaml offset timestamp", tariffconv.YAMLBytes([]byte(fmt.Sprintf(yamlRequest, "2019-06-28T08:35:46+02:00"))), true},
		{"yaml zulu timestamp", tariffconv.YAMLBytes([]byte(fmt.Sprintf(yamlRequest, "2019-06-28T06:35:46Z"))), true},
		{"json without offset", tariffconv.JSONBytes([]byte(strings.Replace(string(loadRequest(t)), "2019-06-28T08:35:46+00:00", "2019-06-28T08:35:46", 1))), false},
	}
	for _, tc := range cases {
		req, err := DecodeRequest(ctx, tc.src)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			if !req.Debug.At.Equal(utc) || req.Debug.At.Location() != time.UTC {
				t.Fatalf("%s: at = %v", tc.name, req.Debug.At)
			}
			continue
		}
		iss, ok := tariffconv.AsIssues(err)
		if !ok || iss[0].Path != "/debug/at" || iss[0].Code != tariffconv.CodeInvalidFormat {
			t.Fatalf("%s: expected invalid_format at /debug/at, got %v", tc.name, err)
		}
	}
}
