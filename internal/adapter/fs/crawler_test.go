package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCrawl_CollectsAcceptedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha")
	writeFile(t, filepath.Join(root, "sub", "b.md"), "beta")
	writeFile(t, filepath.Join(root, "c.bin"), "gamma")

	crawler := NewCrawler([]string{"**/*.txt", "**/*.md"}, nil)
	docs, warnings, err := crawler.Crawl(context.Background(), []string{root})
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	texts := map[string]bool{}
	for _, d := range docs {
		texts[d.Text] = true
	}
	if !texts["alpha"] || !texts["beta"] {
		t.Errorf("unexpected document contents: %v", docs)
	}
}

func TestCrawl_MissingRootIsWarning(t *testing.T) {
	crawler := NewCrawler(nil, nil)
	docs, warnings, err := crawler.Crawl(context.Background(), []string{"/nonexistent/localsearch-test"})
	if err != nil {
		t.Fatalf("missing root must not fail the crawl: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", warnings)
	}
}

func TestCrawl_UnreadableFileIsWarning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.txt"), "readable")
	writeFile(t, filepath.Join(root, "bad.txt"), string([]byte{0xff, 0xfe, 0x00, 0x01}))

	crawler := NewCrawler([]string{"**/*.txt"}, nil)
	docs, warnings, err := crawler.Crawl(context.Background(), []string{root})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if !errors.Is(warnings[0].Err, ErrBinaryFile) {
		t.Errorf("expected binary-file warning, got %v", warnings[0].Err)
	}
}

func TestCrawl_SymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "inner", "doc.txt"), "content")
	if err := os.Symlink(root, filepath.Join(root, "inner", "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	crawler := NewCrawler([]string{"**/*.txt"}, nil)
	docs, warnings, err := crawler.Crawl(context.Background(), []string{root})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Errorf("expected 1 document, got %d", len(docs))
	}

	found := false
	for _, w := range warnings {
		if errors.Is(w.Err, ErrSymlinkCycle) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a symlink-cycle warning, got %v", warnings)
	}
}

func TestCrawl_DuplicatePathsCollapsed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "doc.txt"), "once")

	crawler := NewCrawler([]string{"**/*.txt"}, nil)
	docs, _, err := crawler.Crawl(context.Background(), []string{root, root})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Errorf("same root twice must yield the document once, got %d", len(docs))
	}
}

func TestExtractText_Markup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.xhtml")
	writeFile(t, path, `<html><body><h1>Title</h1><p>Some &amp; text</p></body></html>`)

	text, err := ExtractText(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Title", "Some", "text"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text %q missing %q", text, want)
		}
	}
	if strings.Contains(text, "<h1>") {
		t.Errorf("tags leaked into extracted text: %q", text)
	}
}
