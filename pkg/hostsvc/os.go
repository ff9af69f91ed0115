package hostsvc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// OS implements Services against the local operating system. Dialogs are
// injected as prompt functions so the same implementation serves a terminal
// frontend and tests; a nil prompt behaves as a cancelled dialog.
type OS struct {
	OpenPrompt func() ([]string, error)
	SavePrompt func() (string, error)
	Logger     *logrus.Logger
}

func (o *OS) OpenDialog() ([]string, error) {
	if o.OpenPrompt == nil {
		return nil, ErrCancelled
	}
	return o.OpenPrompt()
}

func (o *OS) SaveDialog() (string, error) {
	if o.SavePrompt == nil {
		return "", ErrCancelled
	}
	return o.SavePrompt()
}

func (o *OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func (o *OS) WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RevealInFileManager shows the file in the platform file manager.
func (o *OS) RevealInFileManager(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-R", path)
	case "windows":
		cmd = exec.Command("explorer", "/select,", path)
	default:
		// No portable select-in-manager on Linux; open the directory.
		cmd = exec.Command("xdg-open", filepath.Dir(path))
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}
	return nil
}

// RegisterRecentDocument is a hook for OS-level recent-document lists. There
// is no portable CLI equivalent of the macOS dock integration, so this logs
// and returns.
func (o *OS) RegisterRecentDocument(path string) {
	if o.Logger != nil {
		o.Logger.WithField("path", path).Debug("register recent document")
	}
}

func (o *OS) ClearRecentDocuments() {
	if o.Logger != nil {
		o.Logger.Debug("clear recent documents")
	}
}
