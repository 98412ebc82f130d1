package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/export"
	"github.com/matzehuels/kozu/pkg/observability"
	"github.com/matzehuels/kozu/pkg/pipeline"
)

// isolate points every user directory at temp dirs so tests never touch
// real config or cache files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("KOZU_CONFIG", "")
	t.Cleanup(observability.Reset)
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	captureStdout(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"generate", "create", "regenerate", "idea", "batch", "render", "interactive", "serve", "templates", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd == root {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"png", []string{"png"}},
		{"PNG, svg ,json", []string{"png", "svg", "json"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Canvas.Width = 640
	c.Config.Render.Formats = []string{"svg"}
	c.Config.Render.Scale = 2

	opts := c.pipelineOptions(generateOpts{height: 300})
	if opts.Width != 640 || opts.Height != 300 {
		t.Errorf("size = %vx%v, want 640x300", opts.Width, opts.Height)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" || opts.Scale != 2 {
		t.Errorf("render options = %v scale %v", opts.Formats, opts.Scale)
	}

	flagged := c.pipelineOptions(generateOpts{formats: "json", scale: 1})
	if flagged.Formats[0] != "json" || flagged.Scale != 1 {
		t.Errorf("flags should override config: %v scale %v", flagged.Formats, flagged.Scale)
	}
}

func TestGenerateCommand(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "art", "shapes.png")

	err := execute(t, "generate", "--seed", "42", "--template", "triangle", "--format", "png,json", "-o", out)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	png, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("png not written: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	doc, err := export.ImportJSON(filepath.Join(filepath.Dir(out), "shapes.json"))
	if err != nil {
		t.Fatalf("json not written: %v", err)
	}
	if doc.Seed != 42 || doc.Template != composition.TemplateTriangle || len(doc.Shapes) != 3 {
		t.Errorf("document = %+v", doc)
	}

	// Same seed, same bytes (second run is served from the file cache).
	again := filepath.Join(t.TempDir(), "again.png")
	if err := execute(t, "create", "--seed", "42", "--template", "triangle", "-o", again); err != nil {
		t.Fatal(err)
	}
	png2, err := os.ReadFile(again)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(png, png2) {
		t.Error("same seed produced different PNGs")
	}
}

func TestGenerateErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := [][]string{
		{"generate", "--template", "spiral", "-o", filepath.Join(dir, "a.png")},
		{"generate", "--format", "gif", "-o", filepath.Join(dir, "b.png")},
		{"generate", "--template", "triangle", "--width", "80", "-o", filepath.Join(dir, "c.png")},
	}
	for _, args := range tests {
		if err := execute(t, args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "sun")

	if err := execute(t, "generate", "--template", "sun", "--seed", "9", "--format", "json,png", "--no-cache", "-o", base); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out := filepath.Join(dir, "rendered", "sun.png")
	if err := execute(t, "render", base+".json", "--format", "png,svg", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	want, err := os.ReadFile(base + ".png")
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("png not written: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("rendering the JSON document should reproduce the generated PNG")
	}
	if _, err := os.Stat(filepath.Join(dir, "rendered", "sun.svg")); err != nil {
		t.Errorf("svg not written: %v", err)
	}

	scaled := filepath.Join(dir, "big.png")
	if err := execute(t, "render", base+".json", "--scale", "2", "-o", scaled); err != nil {
		t.Fatalf("render --scale: %v", err)
	}
	data, err := os.ReadFile(scaled)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || bytes.Equal(data, want) {
		t.Error("scaled render should differ from the 1x PNG")
	}
}

func TestRenderErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	offCanvas := filepath.Join(dir, "off.json")
	doc := `{"template":"sun","seed":1,"width":100,"height":100,"shapes":[{"kind":"circle","x":150,"y":50,"size":10,"color":"#ff9900"}]}`
	if err := os.WriteFile(offCanvas, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	huge := filepath.Join(dir, "huge.json")
	if err := os.WriteFile(huge, []byte(`{"template":"sun","seed":1,"width":8192,"height":8192,"shapes":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := [][]string{
		{"render", filepath.Join(dir, "missing.json"), "-o", filepath.Join(dir, "a.png")},
		{"render", offCanvas, "-o", filepath.Join(dir, "b.png")},
		{"render", huge, "--scale", "4", "-o", filepath.Join(dir, "c.png")},
		{"render", offCanvas, "--format", "gif", "-o", filepath.Join(dir, "d.png")},
		{"render"},
	}
	for _, args := range tests {
		if err := execute(t, args...); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

func TestIdeaCommand(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "idea.json")
	if err := execute(t, "idea", "--format", "json", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("idea: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct{ Template string }
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Template != composition.TemplateTriangle {
		t.Errorf("idea ran %q, want the triangle template", doc.Template)
	}
}

func TestBatchCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if err := execute(t, "batch", "--count", "4", "--seed", "7", "--format", "svg", "--dir", dir); err != nil {
		t.Fatalf("batch: %v", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "kozu-*.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 4 {
		t.Errorf("wrote %d files, want 4: %v", len(files), files)
	}
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "kozu.yaml")
	if err := os.WriteFile(cfgPath, []byte("canvas:\n  width: 320\n  height: 240\nrender:\n  formats: [json]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "cfg")
	if err := execute(t, "--config", cfgPath, "generate", "--template", "sun", "--seed", "3", "-o", out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc, err := export.ImportJSON(out + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width != 320 || doc.Height != 240 {
		t.Errorf("canvas = %vx%v, want 320x240", doc.Width, doc.Height)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "--config", bad, "templates"); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestWriteArtifacts(t *testing.T) {
	res := &pipeline.Result{Artifacts: map[string][]byte{"png": []byte("p"), "svg": []byte("s")}}
	base := filepath.Join(t.TempDir(), "nested", "out.png")

	paths, err := writeArtifacts(res, []string{"png", "svg"}, base)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{base, filepath.Join(filepath.Dir(base), "out.svg")}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, p, want[i])
		}
	}

	if _, err := writeArtifacts(res, []string{"png"}, "bad\x00name"); err == nil {
		t.Error("invalid path should fail")
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&buf)
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(appName)) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}

	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}

func TestTemplatesCommand(t *testing.T) {
	isolate(t)
	buf := captureStdout(t)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"templates"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{composition.TemplateTriangle, composition.TemplateSun} {
		if !bytes.Contains(buf.Bytes(), []byte(name)) {
			t.Errorf("templates output missing %q", name)
		}
	}
}
