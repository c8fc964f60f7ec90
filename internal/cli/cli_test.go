package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/layout"
)

// execute runs the root command with args and empty user config and cache
// dirs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithCache(t, t.TempDir(), args...)
}

// executeWithCache runs the root command with cacheHome as XDG_CACHE_HOME.
func executeWithCache(t *testing.T, cacheHome string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	var logs, out bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"png", []string{"png"}},
		{"png, JPG,,svg", []string{"png", "jpeg", "svg"}},
		{".bmp", []string{"bmp"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"matching extension", "out/cloud.png", []string{"png"}, map[string]string{"png": "out/cloud.png"}},
		{"jpg alias", "cloud.jpg", []string{"jpeg"}, map[string]string{"jpeg": "cloud.jpg"}},
		{"no extension", "cloud", []string{"bmp"}, map[string]string{"bmp": "cloud.bmp"}},
		{"other extension", "cloud.png", []string{"svg"}, map[string]string{"svg": "cloud.svg"}},
		{"multiple", "cloud.png", []string{"png", "svg"}, map[string]string{"png": "cloud.png", "svg": "cloud.svg"}},
		{"unknown extension kept", "cloud.v2", []string{"png"}, map[string]string{"png": "cloud.v2.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestLayoutBase(t *testing.T) {
	tests := map[string]string{
		"out/cloud.layout.json": "out/cloud",
		"cloud.json":            "cloud",
		"cloud":                 "cloud",
	}
	for in, want := range tests {
		if got := layoutBase(in); got != want {
			t.Errorf("layoutBase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParsePair(t *testing.T) {
	got, err := parsePair("center", " 250, 125")
	if err != nil || got != [2]int{250, 125} {
		t.Errorf("parsePair() = %v, %v, want [250 125]", got, err)
	}

	for _, bad := range []string{"", "250", "a,b", "1,2,3"} {
		if _, err := parsePair("center", bad); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("parsePair(%q) error = %v, want %s", bad, err, errors.ErrCodeInvalidArgument)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cloud.png")

	_, err := execute(t, "render", "--center", "100,100", "--size", "20,10", "-n", "5", "-o", out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if data := readFile(t, out); !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("%s is not a PNG", out)
	}
}

func TestRenderCommandMultipleFormats(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "render", "--center", "100,100", "--size", "20,10", "-n", "5",
		"-o", filepath.Join(dir, "cloud"), "-f", "svg,json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if svg := readFile(t, filepath.Join(dir, "cloud.svg")); !bytes.Contains(svg, []byte("<svg")) {
		t.Error("cloud.svg is not an SVG document")
	}
	l, err := layout.Unmarshal(readFile(t, filepath.Join(dir, "cloud.json")))
	if err != nil {
		t.Fatalf("cloud.json: %v", err)
	}
	if len(l.Rectangles) != 5 {
		t.Errorf("cloud.json has %d rectangles, want 5", len(l.Rectangles))
	}
}

func TestRenderCommandExhausted(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tiny.json")
	args := []string{"render", "--center", "5,5", "--size", "10,10", "-n", "2", "-o", out}

	_, err := execute(t, args...)
	if !errors.Is(err, errors.ErrCodePlacementExhausted) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodePlacementExhausted)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output written despite failure")
	}

	if _, err := execute(t, append(args, "--stop-on-exhausted")...); err != nil {
		t.Fatalf("render --stop-on-exhausted: %v", err)
	}
	l, err := layout.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !l.Exhausted || len(l.Rectangles) != 1 {
		t.Errorf("layout = %+v, want 1 rectangle and exhausted", l)
	}
}

func TestRenderCommandInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad center", []string{"render", "--center", "abc"}, errors.ErrCodeInvalidArgument},
		{"negative center", []string{"render", "--center", "-1,5"}, errors.ErrCodeInvalidConfig},
		{"bad format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad color", []string{"render", "--fill", "nope"}, errors.ErrCodeInvalidColor},
		{"directory output", []string{"render", "-o", "out/"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "c.layout.json")

	_, err := execute(t, "layout", "--center", "50,50", "--size", "10,10", "-n", "3", "-o", layoutPath)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := layout.ReadFile(layoutPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(l.Rectangles) != 3 || l.Width != 100 {
		t.Errorf("layout = %+v, want 3 rectangles on a 100-wide field", l)
	}
	if l.Rectangles[0] != (layout.Rect{X: 45, Y: 45, Width: 10, Height: 10}) {
		t.Errorf("first rectangle = %+v, want centered at (50,50)", l.Rectangles[0])
	}

	if _, err := execute(t, "visualize", layoutPath, "-f", "bmp"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	if data := readFile(t, filepath.Join(dir, "c.bmp")); !bytes.HasPrefix(data, []byte("BM")) {
		t.Error("c.bmp is not a BMP")
	}
}

func TestVisualizeMissingLayout(t *testing.T) {
	_, err := execute(t, "visualize", filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfgData := `
[cloud]
center = [60, 60]
size = [10, 10]
count = 3
`
	if err := os.WriteFile(cfgPath, []byte(cfgData), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "from-config.json")
	if _, err := execute(t, "--config", cfgPath, "layout", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if l, err := layout.ReadFile(out); err != nil || len(l.Rectangles) != 3 || l.Width != 120 {
		t.Errorf("layout from config = %+v, %v", l, err)
	}

	if _, err := execute(t, "--config", cfgPath, "layout", "-n", "4", "-o", out); err != nil {
		t.Fatalf("layout -n 4: %v", err)
	}
	if l, err := layout.ReadFile(out); err != nil || len(l.Rectangles) != 4 {
		t.Errorf("flag did not override config: %+v, %v", l, err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := execute(t, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if data := readFile(t, path); !bytes.Contains(data, []byte("[cloud]")) {
		t.Errorf("config file missing [cloud] table:\n%s", data)
	}

	_, err := execute(t, "config", "init", path)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
	if _, err := execute(t, "config", "init", "--force", path); err != nil {
		t.Errorf("config init --force: %v", err)
	}

	out, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[cloud]", "[spiral]", "[output]", "cloud75.bmp"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	cacheHome := t.TempDir()
	dir := t.TempDir()
	args := []string{"render", "--center", "60,60", "--size", "10,10", "-n", "4", "-o", filepath.Join(dir, "c.png")}

	if _, err := executeWithCache(t, cacheHome, args...); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := executeWithCache(t, cacheHome, args...); err != nil {
		t.Fatalf("cached render: %v", err)
	}

	out, err := executeWithCache(t, cacheHome, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(cacheHome, appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}

	if _, err := executeWithCache(t, cacheHome, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(cacheHome, appName))
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear", len(entries))
	}
}

func TestNoCacheFlag(t *testing.T) {
	cacheHome := t.TempDir()

	out := filepath.Join(t.TempDir(), "c.svg")
	if _, err := executeWithCache(t, cacheHome, "--no-cache", "render", "--center", "60,60", "--size", "10,10", "-n", "4", "-o", out); err != nil {
		t.Fatalf("render --no-cache: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cacheHome, appName)); !os.IsNotExist(err) {
		t.Error("--no-cache created the cache directory")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the command name")
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion with unknown shell should fail")
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		toComplete string
		want       []string
	}{
		{"", []string{"bmp", "jpeg", "json", "png", "svg"}},
		{"j", []string{"jpeg", "json"}},
		{"png,", []string{"png,bmp", "png,jpeg", "png,json", "png,svg"}},
		{"png,svg,b", []string{"png,svg,bmp"}},
		{"gif", nil},
	}

	for _, tt := range tests {
		t.Run(tt.toComplete, func(t *testing.T) {
			got, directive := completeFormats(nil, nil, tt.toComplete)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("completeFormats(%q) = %v, want %v", tt.toComplete, got, tt.want)
			}
			if directive&cobra.ShellCompDirectiveNoFileComp == 0 {
				t.Error("format completion should not fall back to files")
			}
		})
	}
}

func TestFlagCompletion(t *testing.T) {
	out, err := execute(t, cobra.ShellCompRequestCmd, "render", "--format", "sv")
	if err != nil {
		t.Fatalf("__complete: %v", err)
	}
	if !strings.Contains(out, "svg") {
		t.Errorf("completion output %q does not offer svg", out)
	}

	out, err = execute(t, cobra.ShellCompRequestCmd, "visualize", "in.json", "--fill", "st")
	if err != nil {
		t.Fatalf("__complete: %v", err)
	}
	if !strings.Contains(out, "steelblue") {
		t.Errorf("completion output %q does not offer steelblue", out)
	}
}
