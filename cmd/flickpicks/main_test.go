// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flickpicks/internal/config"
	"github.com/tomtom215/flickpicks/internal/logging"
	"github.com/tomtom215/flickpicks/internal/recommend"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "blank", input: "   ", want: nil},
		{name: "single", input: "7", want: []int{7}},
		{name: "spaces and trailing comma", input: " 1, 2 ,3,", want: []int{1, 2, 3}},
		{name: "negative", input: "-4", want: []int{-4}},
		{name: "not a number", input: "1,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDs(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIDs(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseIDs(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRecommendFlags(t *testing.T) {
	t.Run("defaults leave ignore and blend to the engine", func(t *testing.T) {
		f, err := parseRecommendFlags([]string{"-seeds", "1,2"}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		req := f.request()
		if !reflect.DeepEqual(req.SeedIDs, []int{1, 2}) {
			t.Errorf("SeedIDs = %v", req.SeedIDs)
		}
		if req.IgnoreIDs != nil {
			t.Errorf("IgnoreIDs = %v, want nil", req.IgnoreIDs)
		}
		if req.Blend != nil {
			t.Errorf("Blend = %v, want nil", req.Blend)
		}
		if req.N != 0 {
			t.Errorf("N = %d, want 0", req.N)
		}
	})

	t.Run("empty ignore excludes nothing", func(t *testing.T) {
		f, err := parseRecommendFlags([]string{"-seeds", "1", "-ignore", ""}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		req := f.request()
		if req.IgnoreIDs == nil || len(req.IgnoreIDs) != 0 {
			t.Errorf("IgnoreIDs = %#v, want empty non-nil", req.IgnoreIDs)
		}
	})

	t.Run("explicit weight sets the blend", func(t *testing.T) {
		f, err := parseRecommendFlags([]string{"-seeds", "1", "-weight-plot", "0.25", "-n", "3"}, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		req := f.request()
		if got := req.Blend.Weight(recommend.SignalPlot); got != 0.25 {
			t.Errorf("plot weight = %v, want 0.25", got)
		}
		if req.N != 3 {
			t.Errorf("N = %d, want 3", req.N)
		}
	})

	errCases := []struct {
		name string
		args []string
	}{
		{name: "weight out of range", args: []string{"-seeds", "1", "-weight-plot", "1.5"}},
		{name: "negative n", args: []string{"-seeds", "1", "-n", "-1"}},
		{name: "bad seed", args: []string{"-seeds", "one"}},
		{name: "positional argument", args: []string{"-seeds", "1", "extra"}},
		{name: "unknown flag", args: []string{"-bogus"}},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRecommendFlags(tt.args, &bytes.Buffer{})
			var ue *usageError
			if !errors.As(err, &ue) {
				t.Errorf("error = %v, want usageError", err)
			}
		})
	}
}

func TestWriteResponse(t *testing.T) {
	resp := &recommend.Response{
		Items: []recommend.ScoredMovie{{ID: 4, Score: 1}, {ID: 2, Score: 0.5}},
	}

	var plain bytes.Buffer
	if err := writeResponse(&plain, resp, false); err != nil {
		t.Fatalf("plain: %v", err)
	}
	if want := "4\t1.000000\n2\t0.500000\n"; plain.String() != want {
		t.Errorf("plain output = %q, want %q", plain.String(), want)
	}

	var out bytes.Buffer
	if err := writeResponse(&out, resp, true); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded recommend.Response
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded.IDs(), []int{4, 2}) {
		t.Errorf("decoded ids = %v", decoded.IDs())
	}
}

// setupCorpus writes a small JSON corpus and a config file pointing at it.
func setupCorpus(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	corpusPath := filepath.Join(dir, "movies.json")
	records := `{"id":1,"soup_plot":"space war alien","soup_general":"scifi"}
{"id":2,"soup_plot":"space war robot","soup_general":"scifi"}
{"id":3,"soup_plot":"romance drama","soup_general":"drama"}
{"id":4,"soup_plot":"space alien war","soup_general":"scifi"}
{"id":5,"soup_plot":"romance comedy","soup_general":"comedy"}
`
	if err := os.WriteFile(corpusPath, []byte(records), 0o600); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(dir, "flickpicks.yaml")
	yaml := "corpus:\n  path: " + corpusPath + "\nlogging:\n  level: disabled\n"
	if err := os.WriteFile(configPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.ConfigPathEnvVar, configPath)

	prev := logging.Logger()
	t.Cleanup(func() {
		logging.SetLogger(prev)
		logging.SetLevelString("info")
	})
}

func TestRun_Recommend(t *testing.T) {
	setupCorpus(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"recommend", "-seeds", "1", "-n", "2", "-weight-plot", "1"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), stdout.String())
	}
	if !strings.HasPrefix(lines[0], "4\t") || !strings.HasPrefix(lines[1], "2\t") {
		t.Errorf("ranking = %q, want 4 then 2", lines)
	}
}

func TestRun_RecommendJSON(t *testing.T) {
	setupCorpus(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"recommend", "-seeds", "3", "-json"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	var resp recommend.Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 4 {
		t.Errorf("got %d items, want 4", len(resp.Items))
	}
	if resp.Metadata.CorpusSize != 5 {
		t.Errorf("CorpusSize = %d, want 5", resp.Metadata.CorpusSize)
	}
	for _, item := range resp.Items {
		if item.ID == 3 {
			t.Error("seed 3 should be ignored by default")
		}
	}
}

func TestRun_ExitCodes(t *testing.T) {
	setupCorpus(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no command", args: nil, want: exitUsage},
		{name: "unknown command", args: []string{"rank"}, want: exitUsage},
		{name: "help", args: []string{"help"}, want: exitOK},
		{name: "version", args: []string{"version"}, want: exitOK},
		{name: "unknown seed", args: []string{"recommend", "-seeds", "99"}, want: exitInvalidSeed},
		{name: "no seeds", args: []string{"recommend"}, want: exitInvalidSeed},
		{name: "n beyond corpus size", args: []string{"recommend", "-seeds", "1", "-n", "1000"}, want: exitOK},
		{name: "unknown ignore id", args: []string{"recommend", "-seeds", "1", "-ignore", "99"}, want: exitError},
		{name: "bad flag", args: []string{"recommend", "-seeds", "x"}, want: exitUsage},
		{name: "serve with args", args: []string{"serve", "now"}, want: exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(context.Background(), tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", got, tt.want, stderr.String())
			}
		})
	}
}
