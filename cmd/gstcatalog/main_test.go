package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gstcatalog/internal/inspect"
	"gstcatalog/internal/services"
	"gstcatalog/internal/snapshot"
)

var fixturePath = filepath.Join("..", "..", "internal", "inspect", "testdata", "print_all.txt")

type cliTestEnv struct {
	home       string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("GSTCATALOG_LOCALE", "")
	t.Setenv("GST_INSPECT_BINARY", filepath.Join(base, "missing-gst-inspect"))
	return &cliTestEnv{home: home, configPath: filepath.Join(base, "config.toml")}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestListFromDumpFilePrintsTSV(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, nil, "list", "--dump-file", fixturePath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %q", out)
	}
	if lines[0] != "Name\tRank\tClassification\tLong name" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[3] != "videotestsrc\tnone\tSource/Video\tVideo test source" {
		t.Fatalf("unexpected row %q", lines[3])
	}
}

func TestListFiltersAndJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, nil, "list", "--dump-file", fixturePath, "--class", "SINK", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var summaries []elementSummary
	if err := json.Unmarshal([]byte(out), &summaries); err != nil {
		t.Fatalf("decode list json: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Name != "autoaudiosink" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	out, err = runCLI(t, env, nil, "list", "--dump-file", fixturePath, "--filter", "src", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	summaries = nil
	if err := json.Unmarshal([]byte(out), &summaries); err != nil {
		t.Fatalf("decode list json: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Name != "videotestsrc" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestListReadsDumpFromStdin(t *testing.T) {
	env := setupCLITestEnv(t)
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	out, err := runCLI(t, env, bytes.NewReader(data), "list", "--dump-file", "-")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "tee\t")
}

func TestListWithoutSnapshotSuggestsRefresh(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, env, nil, "list")
	if !errors.Is(err, snapshot.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
	requireContains(t, err.Error(), "gstcatalog refresh")
}

func TestRefreshStoresSnapshotForLaterCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, nil, "refresh", "--dump-file", fixturePath)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	requireContains(t, out, "Loaded 3 elements")
	requireContains(t, out, "(new)")

	out, err = runCLI(t, env, nil, "refresh", "--dump-file", fixturePath, "--json")
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	var result refreshResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode refresh json: %v", err)
	}
	if result.SnapshotCreated || result.ElementCount != 3 || result.SessionID == "" {
		t.Fatalf("unexpected refresh result: %+v", result)
	}

	out, err = runCLI(t, env, nil, "list")
	if err != nil {
		t.Fatalf("list from snapshot: %v", err)
	}
	requireContains(t, out, "autoaudiosink\tnone\tSink/Audio")

	out, err = runCLI(t, env, nil, "snapshots", "--json")
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	var dumps []snapshot.Dump
	if err := json.Unmarshal([]byte(out), &dumps); err != nil {
		t.Fatalf("decode snapshots json: %v", err)
	}
	if len(dumps) != 1 || dumps[0].ElementCount != 3 {
		t.Fatalf("unexpected snapshots: %+v", dumps)
	}
}

func TestRefreshWithEmptyDumpFails(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write empty dump: %v", err)
	}
	if _, err := runCLI(t, env, nil, "refresh", "--dump-file", empty); err == nil {
		t.Fatal("expected refresh to fail on an empty dump")
	}
}

func TestRefreshWithMissingBinaryFails(t *testing.T) {
	env := setupCLITestEnv(t)
	_, err := runCLI(t, env, nil, "refresh")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected missing binary error, got %v", err)
	}
}

func TestShowElement(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, nil, "show", "videotestsrc", "--dump-file", fixturePath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Classification:  Source/Video")
	requireContains(t, out, "Pad templates (1)")
	requireContains(t, out, "Properties (3)")
	requireContains(t, out, "pattern\tEnum\trwc\t")
	requireContains(t, out, "smpte, snow, solid-color")

	out, err = runCLI(t, env, nil, "show", "tee", "--dump-file", fixturePath, "--json")
	if err != nil {
		t.Fatalf("show json: %v", err)
	}
	var element inspect.Element
	if err := json.Unmarshal([]byte(out), &element); err != nil {
		t.Fatalf("decode element: %v", err)
	}
	if element.Name != "tee" || element.Classification != "Generic" || len(element.PadTemplates) != 2 {
		t.Fatalf("unexpected element: %+v", element)
	}
}

func TestShowUnknownElement(t *testing.T) {
	env := setupCLITestEnv(t)
	_, err := runCLI(t, env, nil, "show", "nope", "--dump-file", fixturePath)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInspectFromDumpFile(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, nil, "inspect", "autoaudiosink", "--dump-file", fixturePath, "--json")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var element inspect.Element
	if err := json.Unmarshal([]byte(out), &element); err != nil {
		t.Fatalf("decode element: %v", err)
	}
	if element.Name != "autoaudiosink" || len(element.Properties) != 2 {
		t.Fatalf("unexpected element: %+v", element)
	}
	if !element.Properties[0].Readable || !element.Properties[0].Writable {
		t.Fatalf("localized flags not recognized: %+v", element.Properties[0])
	}

	if _, err := runCLI(t, env, nil, "inspect", "nope", "--dump-file", fixturePath); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClassesCounts(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, nil, "classes", "--dump-file", fixturePath, "--json")
	if err != nil {
		t.Fatalf("classes: %v", err)
	}
	var classes []classCount
	if err := json.Unmarshal([]byte(out), &classes); err != nil {
		t.Fatalf("decode classes: %v", err)
	}
	want := []string{"Audio", "Generic", "Sink", "Source", "Video"}
	if len(classes) != len(want) {
		t.Fatalf("unexpected classes: %+v", classes)
	}
	for i, c := range classes {
		if c.Class != want[i] || c.Count != 1 {
			t.Fatalf("class %d = %+v, want %s", i, c, want[i])
		}
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, nil, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "gst-inspect:")
	requireContains(t, out, "[ERROR]")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err = runCLI(t, env, nil, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, env, nil, "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
}

func TestIntersectSorted(t *testing.T) {
	got := intersectSorted([]string{"a", "c", "d", "f"}, []string{"b", "c", "f", "g"})
	if strings.Join(got, ",") != "c,f" {
		t.Fatalf("unexpected intersection %v", got)
	}
}

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("gst-inspect", statusOK, "/usr/bin/gst-inspect-1.0", false)
	if got != "  gst-inspect:     [OK] /usr/bin/gst-inspect-1.0" {
		t.Fatalf("unexpected status line %q", got)
	}
	colored := renderStatusLine("gst-inspect", statusError, "missing", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected colored line, got %q", colored)
	}
}
