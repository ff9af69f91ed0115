package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mfiguera/notepad/pkg/hostsvc"
)

// ConfirmPrompt asks a y/N question on w and reads the answer from r.
// Anything but an explicit yes declines.
func ConfirmPrompt(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// OpenPrompt asks for paths to open, one per line, terminated by an empty
// line. No paths means the dialog was dismissed.
func OpenPrompt(r io.Reader, w io.Writer) func() ([]string, error) {
	return func() ([]string, error) {
		fmt.Fprintln(w, "Files to open (one per line, empty line to finish):")
		scanner := bufio.NewScanner(r)
		var paths []string
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				break
			}
			paths = append(paths, line)
		}
		if len(paths) == 0 {
			return nil, hostsvc.ErrCancelled
		}
		return paths, nil
	}
}

// SavePrompt asks for a destination path. An empty answer cancels.
func SavePrompt(r io.Reader, w io.Writer) func() (string, error) {
	return func() (string, error) {
		fmt.Fprint(w, "Save as: ")
		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil {
			return "", hostsvc.ErrCancelled
		}
		path := strings.TrimSpace(line)
		if path == "" {
			return "", hostsvc.ErrCancelled
		}
		return path, nil
	}
}
