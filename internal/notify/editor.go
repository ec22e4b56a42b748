package notify

import (
	"fmt"
	"os"
	"os/exec"
)

// OpenInEditor opens path in $EDITOR, attached to the terminal.
// It does nothing when $EDITOR is unset.
func OpenInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return nil
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor %s: %w", editor, err)
	}
	return nil
}
