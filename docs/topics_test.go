package docs

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics checks that the index and the embedded topics list the same names.
func TestTopics(t *testing.T) {
	readme, err := GetTopic(index)
	if err != nil {
		t.Fatal(err)
	}
	var listed []string
	for _, m := range regexp.MustCompile(`(?m)^\*\s+([^:]+):`).FindAllStringSubmatch(readme, -1) {
		listed = append(listed, strings.TrimSpace(m[1]))
	}
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("topic %q is listed but cannot be read: %v", topic, err)
		}
	}
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in %s.md", topic, index)
		}
	}
}

// Fenced blocks the documentation is tested with. A setup starts a scenario
// in a fresh folder, the output of the last run is compared to the next
// console check, and a check must exit successfully.
const (
	setupBlock   = "bash setup"
	runBlock     = "bash run"
	consoleBlock = "console check"
	checkBlock   = "bash check"
)

type block struct {
	kind, script string
	line         int
}

func TestCodeBlocks(t *testing.T) {
	if testing.Short() {
		t.Skip("builds qb")
	}
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	bin := t.TempDir()
	if out, err := exec.Command("go", "build", "-o", filepath.Join(bin, "qb"), "../qb/").CombinedOutput(); err != nil {
		t.Fatalf("cannot build qb: %v\n%s", err, out)
	}
	env := append(os.Environ(),
		"PATH="+bin+string(os.PathListSeparator)+os.Getenv("PATH"),
		"QB_STORE=file", "QB_DIR=.", "QB_LOG_LEVEL=warning",
	)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			dir, output := t.TempDir(), ""
			for _, b := range codeBlocks(t, file) {
				if b.kind == consoleBlock {
					if got, want := strings.TrimSpace(output), strings.TrimSpace(b.script); got != want {
						t.Errorf("%s:%d: got output\n%s\nwant\n%s", file, b.line, got, want)
					}
					continue
				}
				if b.kind == setupBlock {
					dir = t.TempDir()
				}
				cmd := exec.Command("bash", "-c", "set -e; "+b.script)
				cmd.Dir, cmd.Env = dir, env
				out, err := cmd.CombinedOutput()
				if b.kind == runBlock {
					output = string(out)
				}
				if err == nil {
					continue
				}
				if b.kind == checkBlock {
					t.Errorf("%s:%d: check failed: %v\n%s", file, b.line, err, out)
					continue
				}
				t.Fatalf("%s:%d: %s failed: %v\n%s", file, b.line, b.kind, err, out)
			}
		})
	}
}

// codeBlocks returns the tested fenced blocks of file, in order.
func codeBlocks(t *testing.T, file string) []block {
	t.Helper()
	src, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(src))
		switch kind {
		case setupBlock, runBlock, consoleBlock, checkBlock:
		default:
			return ast.WalkContinue, nil
		}
		var script strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			script.Write(line.Value(src))
		}
		blocks = append(blocks, block{
			kind:   kind,
			script: script.String(),
			line:   bytes.Count(src[:fcb.Info.Segment.Start], []byte("\n")) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

func TestTitle(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"readme", "qb documentation"},
		{"share", "Share"},
		{"missing", "missing"},
	}
	for _, tt := range tests {
		if got := Title(tt.topic); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestGetAllTopics(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		if topic == "readme" {
			t.Errorf("GetAllTopics() lists the index")
		}
	}
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		if !strings.Contains(all, "# "+Title(topic)) {
			t.Errorf("GetTopic(*) misses topic %q", topic)
		}
	}
}
