// Package editor opens the keylight config file in the user's editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// ErrNoEditor is returned when neither $VISUAL, $EDITOR nor a fallback is available.
var ErrNoEditor = errors.New("no editor found: set $EDITOR environment variable")

// Find returns the editor command to use. lookup is normally os.LookupEnv;
// $VISUAL wins over $EDITOR, then nvim, vim, vi and nano are tried on PATH.
func Find(lookup func(string) (string, bool)) (string, error) {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if ed, ok := lookup(key); ok && strings.TrimSpace(ed) != "" {
			return strings.TrimSpace(ed), nil
		}
	}
	for _, ed := range fallbackEditors {
		if path, err := exec.LookPath(ed); err == nil {
			return path, nil
		}
	}
	return "", ErrNoEditor
}

// Streams are the terminal the editor runs on.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open runs editor on filePath in the foreground and waits for it to exit.
// The editor string is split by whitespace to support values like "code --wait".
func Open(ctx context.Context, editor, filePath string, s Streams) error {
	args := strings.Fields(editor)
	if len(args) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	args = append(args, filePath)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", editor, err)
	}
	return nil
}
