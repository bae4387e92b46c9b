package editor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestFindPrefersEnvironment(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"editor only", map[string]string{"EDITOR": "/usr/bin/vim"}, "/usr/bin/vim"},
		{"visual wins", map[string]string{"VISUAL": "code --wait", "EDITOR": "vim"}, "code --wait"},
		{"blank visual ignored", map[string]string{"VISUAL": " ", "EDITOR": "nano"}, "nano"},
		{"surrounding space trimmed", map[string]string{"EDITOR": " subl "}, "subl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(env(tt.vars))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindFallsBackToPath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "vi")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	got, err := Find(env(nil))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fake {
		t.Errorf("got %q, want %q", got, fake)
	}
}

func TestFindReturnsErrorWhenNoEditorAvailable(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Find(env(nil))

	if !errors.Is(err, ErrNoEditor) {
		t.Fatalf("error = %v, want ErrNoEditor", err)
	}
}

func TestOpenReturnsErrorForNonExistentEditor(t *testing.T) {
	err := Open(context.Background(), "/nonexistent/editor", "config.yaml", Streams{})

	if err == nil {
		t.Fatal("expected error for non-existent editor")
	}
	if !strings.Contains(err.Error(), "run editor") {
		t.Errorf("error message %q should contain %q", err.Error(), "run editor")
	}
}

func TestOpenRejectsEmptyEditor(t *testing.T) {
	if err := Open(context.Background(), "  ", "config.yaml", Streams{}); err == nil {
		t.Fatal("expected error for empty editor")
	}
}

func TestOpenPassesFileAndArgs(t *testing.T) {
	echo, err := exec.LookPath("echo")
	if err != nil {
		t.Skip("echo not available")
	}
	var out bytes.Buffer

	// "echo --flag" should be split into ["echo", "--flag", filePath]
	err = Open(context.Background(), echo+" --flag", "config.yaml", Streams{Out: &out})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "--flag config.yaml" {
		t.Errorf("editor saw %q", got)
	}
}
