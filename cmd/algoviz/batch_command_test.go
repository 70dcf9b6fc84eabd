package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollectSourcesKeepsExtensionsDistinct(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.cpp", "a.py", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := collectSources([]string{dir}, []string{".cpp", ".py"})
	if err != nil {
		t.Fatalf("collectSources: %v", err)
	}
	want := []string{filepath.Join(dir, "a.cpp"), filepath.Join(dir, "a.py")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sources (-want +got):\n%s", diff)
	}
	if outputName(got[0]) == outputName(got[1]) {
		t.Fatalf("output names collide: %s", outputName(got[0]))
	}
	if name := outputName(got[0]); name != "a.cpp.json" {
		t.Fatalf("outputName = %q", name)
	}
}

func TestCollectSourcesRejectsOutputCollisions(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	for _, dir := range []string{first, second} {
		if err := os.WriteFile(filepath.Join(dir, "sort.c"), []byte("int x;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	_, err := collectSources([]string{first, second}, []string{".c"})
	if err == nil || !strings.Contains(err.Error(), "sort.c.json") {
		t.Fatalf("expected collision error, got %v", err)
	}
}
