// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package corpus

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/flickpicks/internal/recommend"
)

var sampleRecords = []recommend.MovieRecord{
	{ID: 1, SoupPlot: "space war alien", SoupGeneral: "scifi ridley"},
	{ID: 2, SoupPlot: "space war robot", SoupGeneral: "scifi"},
	{ID: 3, SoupPlot: "romance drama", SoupGeneral: ""},
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		path    string
		format  string
		want    string
		wantErr bool
	}{
		{"movies.parquet", "", FormatParquet, false},
		{"movies.PQ", "auto", FormatParquet, false},
		{"movies.csv", "", FormatCSV, false},
		{"movies.tsv", "", FormatTSV, false},
		{"movies.tab", "", FormatTSV, false},
		{"movies.json", "", FormatJSON, false},
		{"movies.ndjson", "", FormatJSON, false},
		{"db.sqlite3", "", FormatSQLite, false},
		{"catalogue.db", "", FormatSQLite, false},
		{"movies.dat", "sqlite", FormatSQLite, false},
		{"movies.dat", "csv", FormatCSV, false},
		{"movies.dat", " TSV ", FormatTSV, false},
		{"movies.dat", "", "", true},
		{"movies.csv", "xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.format, func(t *testing.T) {
			got, err := ResolveFormat(tt.path, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(Config{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpen_JSON(t *testing.T) {
	path := writeFile(t, "movies.json", `[{"id":1,"soup_plot":"space war alien","soup_general":"scifi ridley"}]`)

	src, err := Open(Config{Path: path}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if src.Name() != "json" {
		t.Errorf("Name() = %q, want json", src.Name())
	}

	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != 1 {
		t.Errorf("Load() = %+v", records)
	}
}

func TestOpen_WrapsWithBreaker(t *testing.T) {
	path := writeFile(t, "movies.json", `[]`)

	src, err := Open(Config{Path: path, Breaker: BreakerConfig{Enabled: true}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if _, ok := src.(*BreakerSource); !ok {
		t.Errorf("Open() returned %T, want *BreakerSource", src)
	}
}

func TestJSONSource_Stream(t *testing.T) {
	path := writeFile(t, "movies.jsonl", strings.Join([]string{
		`{"id":1,"soup_plot":"space war alien","soup_general":"scifi ridley"}`,
		`{"id":2,"soup_plot":"space war robot","soup_general":"scifi"}`,
		`{"id":3,"soup_plot":"romance drama"}`,
		``,
	}, "\n"))

	records, err := NewJSONSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(records, sampleRecords) {
		t.Errorf("Load() = %+v, want %+v", records, sampleRecords)
	}
}

func TestJSONSource_ArrayWithLeadingWhitespace(t *testing.T) {
	path := writeFile(t, "movies.json", "\n  [\n"+
		`{"id":1,"soup_plot":"space war alien","soup_general":"scifi ridley"},`+
		`{"id":2,"soup_plot":"space war robot","soup_general":"scifi"},`+
		`{"id":3,"soup_plot":"romance drama","soup_general":""}`+"\n]\n")

	records, err := NewJSONSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(records, sampleRecords) {
		t.Errorf("Load() = %+v, want %+v", records, sampleRecords)
	}
}

func TestJSONSource_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewJSONSource(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Load() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{"id": "one"}`)
		if _, err := NewJSONSource(path).Load(context.Background()); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.json", "  \n")
		records, err := NewJSONSource(path).Load(context.Background())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(records) != 0 {
			t.Errorf("Load() = %+v, want none", records)
		}
	})
}

func TestStaticSource_CopiesRecords(t *testing.T) {
	in := append([]recommend.MovieRecord(nil), sampleRecords...)
	src := NewStaticSource(in)
	in[0].ID = 99

	out, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out[0].ID != 1 {
		t.Errorf("source shares caller slice")
	}
	out[1].ID = 98

	again, _ := src.Load(context.Background())
	if again[1].ID != 2 {
		t.Errorf("Load() result shares source slice")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() with cancelled context error = %v", err)
	}
}

func TestDuckDBSource_CSV(t *testing.T) {
	path := writeFile(t, "movies.csv", "id,soup_plot,soup_general\n"+
		"1,space war alien,scifi ridley\n"+
		"2,space war robot,scifi\n"+
		"3,romance drama,\n")

	src, err := NewDuckDBSource(DuckDBConfig{Path: path, Format: FormatCSV, Threads: 1})
	if err != nil {
		t.Fatalf("NewDuckDBSource() error = %v", err)
	}
	defer src.Close()

	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(records, sampleRecords) {
		t.Errorf("Load() = %+v, want %+v", records, sampleRecords)
	}
	if src.Name() != "duckdb_csv" {
		t.Errorf("Name() = %q", src.Name())
	}
}

func TestDuckDBSource_TSVCustomColumns(t *testing.T) {
	path := writeFile(t, "movies.tsv", "movie_id\tplot\tgeneral\n"+
		"1\tspace war alien\tscifi ridley\n"+
		"2\tspace war robot\tscifi\n"+
		"3\tromance drama\t\\N\n")

	src, err := NewDuckDBSource(DuckDBConfig{
		Path:    path,
		Format:  FormatTSV,
		Columns: Columns{ID: "movie_id", Plot: "plot", General: "general"},
	})
	if err != nil {
		t.Fatalf("NewDuckDBSource() error = %v", err)
	}
	defer src.Close()

	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(records, sampleRecords) {
		t.Errorf("Load() = %+v, want %+v", records, sampleRecords)
	}
}

func TestDuckDBSource_Parquet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.parquet")

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`COPY (
		SELECT * FROM (VALUES
			(1, 'space war alien', 'scifi ridley'),
			(2, 'space war robot', 'scifi'),
			(3, 'romance drama', NULL)
		) AS t(id, soup_plot, soup_general) ORDER BY id
	) TO ` + quoteLiteral(path) + ` (FORMAT PARQUET)`)
	if err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	src, err := Open(Config{Path: path}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(records, sampleRecords) {
		t.Errorf("Load() = %+v, want %+v", records, sampleRecords)
	}
}

func TestDuckDBSource_Errors(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		if _, err := NewDuckDBSource(DuckDBConfig{Path: "x.json", Format: FormatJSON}); err == nil {
			t.Error("expected error for json format")
		}
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeFile(t, "movies.csv", "id,plot\n1,space\n")
		src, err := NewDuckDBSource(DuckDBConfig{Path: path, Format: FormatCSV})
		if err != nil {
			t.Fatalf("NewDuckDBSource() error = %v", err)
		}
		defer src.Close()
		if _, err := src.Load(context.Background()); err == nil {
			t.Error("expected error for missing soup columns")
		}
	})

	t.Run("null id", func(t *testing.T) {
		path := writeFile(t, "movies.csv", "id,soup_plot,soup_general\n,space,scifi\n")
		src, err := NewDuckDBSource(DuckDBConfig{Path: path, Format: FormatCSV})
		if err != nil {
			t.Fatalf("NewDuckDBSource() error = %v", err)
		}
		defer src.Close()
		if _, err := src.Load(context.Background()); err == nil {
			t.Error("expected error for NULL id")
		}
	})
}

func TestBuildQuery_Quoting(t *testing.T) {
	q, err := buildQuery(DuckDBConfig{
		Path:    "/data/o'brien.csv",
		Format:  FormatCSV,
		Columns: Columns{ID: `we"ird`, Plot: "p", General: "g"},
	})
	if err != nil {
		t.Fatalf("buildQuery() error = %v", err)
	}
	if !strings.Contains(q, `'/data/o''brien.csv'`) {
		t.Errorf("path not escaped: %s", q)
	}
	if !strings.Contains(q, `"we""ird"`) {
		t.Errorf("identifier not escaped: %s", q)
	}
}

type flakySource struct {
	calls int
	err   error
}

func (f *flakySource) Name() string { return "flaky" }
func (f *flakySource) Close() error { return nil }
func (f *flakySource) Load(context.Context) ([]recommend.MovieRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return sampleRecords, nil
}

func TestBreakerSource_OpensAfterConsecutiveFailures(t *testing.T) {
	flaky := &flakySource{err: errors.New("mount gone")}
	src := NewBreakerSource(flaky, BreakerConfig{
		Enabled:          true,
		Name:             "test-breaker-open",
		FailureThreshold: 2,
		Timeout:          time.Hour,
	}, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := src.Load(context.Background()); err == nil || errors.Is(err, ErrSourceUnavailable) {
			t.Fatalf("load %d: error = %v, want source error", i, err)
		}
	}

	if src.State() != "open" {
		t.Fatalf("State() = %q, want open", src.State())
	}

	_, err := src.Load(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Load() error = %v, want ErrSourceUnavailable", err)
	}
	if flaky.calls != 2 {
		t.Errorf("underlying source called %d times, want 2", flaky.calls)
	}
}

func TestBreakerSource_PassesThrough(t *testing.T) {
	flaky := &flakySource{}
	src := NewBreakerSource(flaky, BreakerConfig{Enabled: true, Name: "test-breaker-ok"}, zerolog.Nop())

	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != len(sampleRecords) {
		t.Errorf("Load() returned %d records", len(records))
	}
	if src.Name() != "flaky" {
		t.Errorf("Name() = %q, want flaky", src.Name())
	}
	if src.State() != "closed" {
		t.Errorf("State() = %q, want closed", src.State())
	}
}

func TestBreakerSource_IgnoresCancellation(t *testing.T) {
	flaky := &flakySource{err: context.Canceled}
	src := NewBreakerSource(flaky, BreakerConfig{
		Enabled:          true,
		Name:             "test-breaker-cancel",
		FailureThreshold: 1,
	}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, _ = src.Load(context.Background())
	}
	if src.State() != "closed" {
		t.Errorf("State() = %q, want closed", src.State())
	}
}
