package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/yieldpath/internal/fixture"
	"github.com/matzehuels/yieldpath/pkg/errors"
	yio "github.com/matzehuels/yieldpath/pkg/io"
	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/pipeline"
)

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte(fixture.SampleText), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeResult(t *testing.T, out string) pipeline.Result {
	t.Helper()
	var res pipeline.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return res
}

func TestSolveCommand(t *testing.T) {
	input := writeSample(t)

	out, err := run(t, "solve", input, "--json")
	if err != nil {
		t.Fatal(err)
	}
	res := decodeResult(t, out)
	if res.Yield != fixture.SingleYield || res.Budget != fixture.SingleBudget {
		t.Errorf("single = yield %d budget %d", res.Yield, res.Budget)
	}

	out, err = run(t, "solve", input, "--json", "--agents", "2", "--plan", "--workers", "2")
	if err != nil {
		t.Fatal(err)
	}
	res = decodeResult(t, out)
	if res.Yield != fixture.PairYield || res.Budget != fixture.PairBudget {
		t.Errorf("pair = yield %d budget %d", res.Yield, res.Budget)
	}
	if res.Partition == nil || len(res.Plans) != 2 {
		t.Errorf("pair result should carry a partition and two plans: %+v", res)
	}
}

func TestSolveCommandHumanOutput(t *testing.T) {
	input := writeSample(t)
	for _, args := range [][]string{
		{"solve", input},
		{"solve", input, "--plan", "--agents", "2"},
	} {
		if _, err := run(t, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
}

func TestSolveCommandErrors(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(malformed, []byte("Valve AA has no rate\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	input := writeSample(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing input", []string{"solve", filepath.Join(dir, "nope.txt")}, errors.ErrCodeFileNotFound},
		{"malformed input", []string{"solve", malformed}, errors.ErrCodeInvalidInput},
		{"zero budget", []string{"solve", input, "--budget", "0"}, errors.ErrCodeInvalidOptions},
		{"three agents", []string{"solve", input, "--agents", "3"}, errors.ErrCodeInvalidOptions},
		{"unknown start", []string{"solve", input, "--start", "ZZ"}, errors.ErrCodeInvalidOptions},
		{"missing config", []string{"solve", input, "--config", filepath.Join(dir, "none.toml")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSolveCommandCaches(t *testing.T) {
	input := writeSample(t)
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := runIn(t, New(io.Discard, LogInfo).RootCommand(), "solve", input, "--json"); err != nil {
		t.Fatal(err)
	}
	entries, _ := filepath.Glob(filepath.Join(cacheHome, appName, "*", "*.json"))
	if len(entries) != 1 {
		t.Fatalf("want one cache entry, got %v", entries)
	}

	if _, err := runIn(t, New(io.Discard, LogInfo).RootCommand(), "solve", input, "--json", "--no-cache", "--budget", "20"); err != nil {
		t.Fatal(err)
	}
	entries, _ = filepath.Glob(filepath.Join(cacheHome, appName, "*", "*.json"))
	if len(entries) != 1 {
		t.Errorf("--no-cache should not write entries, got %v", entries)
	}

	if _, err := runIn(t, New(io.Discard, LogInfo).RootCommand(), "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ = filepath.Glob(filepath.Join(cacheHome, appName, "*", "*.json"))
	if len(entries) != 0 {
		t.Errorf("cache clear left %v", entries)
	}

	out, err := runIn(t, New(io.Discard, LogInfo).RootCommand(), "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.Join(cacheHome, appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestSolveCommandConfig(t *testing.T) {
	input := writeSample(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("budget = 20\nno_cache = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runIn(t, New(io.Discard, LogInfo).RootCommand(), "solve", input, "--json")
	if err != nil {
		t.Fatal(err)
	}
	if res := decodeResult(t, out); res.Budget != 20 {
		t.Errorf("config budget not applied: %d", res.Budget)
	}

	out, err = runIn(t, New(io.Discard, LogInfo).RootCommand(), "solve", input, "--json", "--budget", "30")
	if err != nil {
		t.Fatal(err)
	}
	if res := decodeResult(t, out); res.Budget != 30 || res.Yield != fixture.SingleYield {
		t.Errorf("flag should override config: budget %d yield %d", res.Budget, res.Yield)
	}

	if entries, _ := filepath.Glob(filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName, "*", "*.json")); len(entries) != 0 {
		t.Errorf("no_cache from config should disable caching, got %v", entries)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cfg, err := loadConfig(write("ok.toml", "start = \"BB\"\nagents = 2\npair_budget = 20\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Start != "BB" || cfg.Agents != 2 || cfg.PairBudget != 20 {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := loadConfig(write("typo.toml", "budgett = 20\n")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown key: %v", err)
	}
	if _, err := loadConfig(write("bad.toml", "budget = \n")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad syntax: %v", err)
	}
	if _, err := loadConfig(write("neg.toml", "budget = -1\n")); !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Errorf("negative budget: %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if cfg, err := loadConfig(""); err != nil || cfg != (Config{}) {
		t.Errorf("missing default config should be empty: %+v, %v", cfg, err)
	}
}

func TestConfigApply(t *testing.T) {
	cfg := Config{Start: "BB", Budget: 20, Workers: 4, NoCache: true}
	opts := solveOpts{start: "AA", budget: 30, workers: 1}

	changed := func(name string) bool { return name == "workers" }
	cfg.apply(changed, &opts)

	if opts.start != "BB" || opts.budget != 20 {
		t.Errorf("unset flags should take config values: %+v", opts)
	}
	if opts.workers != 1 {
		t.Errorf("explicit --workers should win, got %d", opts.workers)
	}
	if !opts.noCache {
		t.Error("no_cache should apply")
	}
}

func TestConfigInit(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	path, created, err := writeDefaultConfig()
	if err != nil || !created {
		t.Fatalf("first init: created %v, err %v", created, err)
	}
	if _, err := loadConfig(path); err != nil {
		t.Errorf("default config should load cleanly: %v", err)
	}
	if _, created, _ := writeDefaultConfig(); created {
		t.Error("second init should keep the existing file")
	}
}

func TestDistanceRows(t *testing.T) {
	net := fixture.MustNetwork()
	ids := distanceIDs(net, "AA", false)
	if !slices.Equal(ids, []string{"AA", "BB", "CC", "DD", "EE", "HH", "JJ"}) {
		t.Fatalf("ids = %v", ids)
	}

	rows := distanceRows(net, network.NewDistances(net), ids)
	want := []string{"AA", "0", "1", "2", "1", "2", "5", "2"}
	if !slices.Equal(rows[0], want) {
		t.Errorf("AA row = %v, want %v", rows[0], want)
	}
	for i, row := range rows {
		if row[i+1] != "0" {
			t.Errorf("diagonal of %s = %s", row[0], row[i+1])
		}
	}

	if all := distanceIDs(net, "AA", true); len(all) != net.Len() {
		t.Errorf("--all should list every location, got %v", all)
	}
}

func TestDistanceRowsUnreachable(t *testing.T) {
	net, err := network.Build([]network.Record{
		{ID: "A", Neighbors: []string{"B"}},
		{ID: "B", Rate: 1},
		{ID: "C", Rate: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	rows := distanceRows(net, network.NewDistances(net), []string{"A", "B", "C"})
	if rows[0][3] != "-" || rows[2][1] != "-" {
		t.Errorf("unreachable pairs should be dashes: %v", rows)
	}
}

func TestDistancesCommand(t *testing.T) {
	out, err := run(t, "distances", writeSample(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"AA", "BB", "HH", "JJ"} {
		if !strings.Contains(out, id) {
			t.Errorf("table should mention %s:\n%s", id, out)
		}
	}
	if strings.Contains(out, "GG") {
		t.Errorf("irrelevant locations should be omitted without --all:\n%s", out)
	}
}

func TestConvertCommand(t *testing.T) {
	input := writeSample(t)

	out, err := run(t, "convert", input)
	if err != nil {
		t.Fatal(err)
	}
	records, err := yio.ReadJSON(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 10 {
		t.Errorf("converted %d records, want 10", len(records))
	}

	target := filepath.Join(t.TempDir(), "sample.toml")
	if _, err := run(t, "convert", input, "--to", "toml", "-o", target); err != nil {
		t.Fatal(err)
	}
	back, err := yio.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	want := fixture.MustNetwork()
	got, err := network.Build(back)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.Edges(), want.Edges()) {
		t.Errorf("TOML round trip changed edges: %v", got.Edges())
	}

	if _, err := run(t, "convert", input, "--to", "yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("yaml should be rejected: %v", err)
	}

	badIDs := filepath.Join(t.TempDir(), "bad.json")
	doc := `[{"id": "A,B", "rate": 1, "neighbors": ["C D"]}, {"id": "C D", "rate": 1}]`
	if err := os.WriteFile(badIDs, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	textOut := filepath.Join(t.TempDir(), "bad.txt")
	if _, err := run(t, "convert", badIDs, "--to", "text", "-o", textOut); !errors.Is(err, errors.ErrCodeInvalidNetwork) {
		t.Errorf("ids the text format cannot hold should be rejected: %v", err)
	}
	if _, err := os.Stat(textOut); err == nil {
		t.Error("no text file should be written for a rejected network")
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeSample(t)
	target := filepath.Join(t.TempDir(), "sample.dot")

	if _, err := run(t, "render", input, "-f", "dot", "-o", target, "--plan"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("graph G {")) {
		t.Errorf("unexpected DOT output:\n%s", data)
	}
	if !bytes.Contains(data, []byte(`\n#1`)) {
		t.Errorf("--plan should number activations:\n%s", data)
	}

	if _, err := run(t, "render", input, "-f", "pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("pdf should be rejected: %v", err)
	}
}
