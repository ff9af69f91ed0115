package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mfiguera/notepad/pkg/service"
)

func NewEditCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a tab's content in your editor",
		Long: `Open the content of a tab (the active one when no id is given) in the
configured editor. When you exit, the edited text becomes the tab's content.
The tab is NOT saved to its file; use 'notepad save' for that.

Examples:
  notepad edit
  notepad edit 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			doc, err := resolveDoc(s, args)
			if err != nil {
				return err
			}

			edited, err := editInEditor(s.Config.Editor, doc.Content)
			if err != nil {
				return err
			}

			if err := s.SetContent(doc.ID, edited); err != nil {
				return err
			}
			if doc.Modified {
				fmt.Printf("Tab %d modified\n", doc.ID)
			} else {
				fmt.Printf("Tab %d unchanged\n", doc.ID)
			}
			return nil
		},
	}

	return cmd
}

// editInEditor round-trips content through a temporary file and the
// user's editor.
func editInEditor(editor, content string) (string, error) {
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}

	tmpDir, err := os.MkdirTemp("", "notepad-edit-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, "buffer.txt")
	if err := os.WriteFile(tmpPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	ed := exec.Command(editor, tmpPath)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(data), nil
}
