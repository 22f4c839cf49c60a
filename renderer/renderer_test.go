package renderer

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/card"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func asset(id, name, amount string, icon qianbao.Icon) qianbao.Asset {
	return qianbao.Asset{ID: id, Name: name, Amount: decimal.RequireFromString(amount), Icon: icon}
}

// book builds the view of assets the way the store totals them.
func book(t *testing.T, assets ...qianbao.Asset) *Book {
	t.Helper()
	b := qianbao.NewBook()
	for _, a := range assets {
		if err := b.Append(a); err != nil {
			t.Fatal(err)
		}
	}
	return NewBook(b.Assets(), b.Total(qianbao.DefaultCurrency))
}

func TestRenderBook(t *testing.T) {
	tests := []struct {
		name   string
		assets []qianbao.Asset
		want   string
	}{
		{
			name: "empty",
			want: "# Total assets (CNY)\n\n**¥0**\n\n_No assets yet._\n",
		},
		{
			name: "insertion order",
			assets: []qianbao.Asset{
				asset("a1", "Cash", "200", qianbao.PresetIcon("💰")),
				asset("a2", "Car", "50000", qianbao.PresetIcon("🚗")),
			},
			want: "# Total assets (CNY)\n" +
				"\n" +
				"**¥50,200**\n" +
				"\n" +
				"| Icon | Name | Amount | ID |\n" +
				"|:----:|:-----|-------:|:---|\n" +
				"| 💰 | Cash | ¥200 | `a1` |\n" +
				"| 🚗 | Car | ¥50,000 | `a2` |\n",
		},
		{
			name: "escaped cells and default icon",
			assets: []qianbao.Asset{
				asset("a1", "Stocks|Bonds", "-1500.25", qianbao.Icon{}),
				asset("a2", "Photo", "1", qianbao.CustomIcon("data:image/png;base64,AA==")),
			},
			want: "# Total assets (CNY)\n" +
				"\n" +
				"**-¥1,499.25**\n" +
				"\n" +
				"| Icon | Name | Amount | ID |\n" +
				"|:----:|:-----|-------:|:---|\n" +
				"| 💰 | Stocks\\|Bonds | -¥1,500.25 | `a1` |\n" +
				"| [image] | Photo | ¥1 | `a2` |\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderBook(book(t, tt.assets...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderBook() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderTotal(t *testing.T) {
	b := book(t,
		asset("a1", "Cash", "100", qianbao.DefaultIcon()),
		asset("a2", "Car", "50100", qianbao.DefaultIcon()),
	)
	want := "# Total assets (CNY)\n\n**¥50,200**\n"
	if got := RenderTotal(b); got != want {
		t.Errorf("RenderTotal() = %q, want %q", got, want)
	}
}

func TestRenderIcons(t *testing.T) {
	got := RenderIcons(NewIcons())
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2+len(qianbao.Presets()) {
		t.Fatalf("RenderIcons() has %d lines, want %d:\n%s", len(lines), 2+len(qianbao.Presets()), got)
	}
	if want := "| 💰 | Money bag |"; lines[2] != want {
		t.Errorf("first icon line = %q, want %q", lines[2], want)
	}
	if want := "| 🚗 | Car |"; lines[len(lines)-1] != want {
		t.Errorf("last icon line = %q, want %q", lines[len(lines)-1], want)
	}
}

func TestRenderCard(t *testing.T) {
	c := card.New(qianbao.M(50200, qianbao.DefaultCurrency))
	img := &card.Image{Width: 728, Height: 420}

	tests := []struct {
		name string
		file string
		want string
	}{
		{
			name: "saved",
			file: "card.png",
			want: "# Total assets (CNY)\n\n**¥50,200**\n\nCard saved to `card.png` (728x420 px).\n\n> Long-press the image to save it\n",
		},
		{
			name: "not saved",
			want: "# Total assets (CNY)\n\n**¥50,200**\n\n> Long-press the image to save it\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCard(NewCard(c, img, tt.file))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderCard() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestTemplatesParse checks that every embedded template is used by a renderer and parses.
func TestTemplatesParse(t *testing.T) {
	used := map[string]bool{
		"book.md":        true,
		"book_total.md":  true,
		"book_assets.md": true,
		"icons.md":       true,
		"card.md":        true,
	}
	entries, err := templates.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	for _, e := range entries {
		if !used[e.Name()] {
			t.Errorf("template %q is not used by any renderer", e.Name())
			continue
		}
		content, err := fs.ReadFile(templates, e.Name())
		if err != nil {
			t.Fatalf("ReadFile(%q): %v", e.Name(), err)
		}
		if _, err := newTemplate(e.Name()).Parse(string(content)); err != nil {
			t.Errorf("template %q does not parse: %v", e.Name(), err)
		}
	}
}
