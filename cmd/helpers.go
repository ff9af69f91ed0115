package cmd

import (
	"fmt"
	"strconv"

	"github.com/mfiguera/notepad/pkg/models"
	"github.com/mfiguera/notepad/pkg/service"
)

// parseDocID parses a document id argument.
func parseDocID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid document id %q", arg)
	}
	return id, nil
}

// resolveDoc returns the document named by the first argument, or the active
// document when no argument was given.
func resolveDoc(s *service.Service, args []string) (*models.Document, error) {
	if len(args) == 0 {
		doc := s.Collection.Active()
		if doc == nil {
			return nil, fmt.Errorf("no active document")
		}
		return doc, nil
	}

	id, err := parseDocID(args[0])
	if err != nil {
		return nil, err
	}
	doc := s.Collection.Get(id)
	if doc == nil {
		return nil, fmt.Errorf("no document with id %d", id)
	}
	return doc, nil
}

// resolveDocFlag is like resolveDoc for commands that take the tab id as a
// flag instead of a positional argument.
func resolveDocFlag(s *service.Service, arg string) (*models.Document, error) {
	if arg == "" {
		return resolveDoc(s, nil)
	}
	return resolveDoc(s, []string{arg})
}
