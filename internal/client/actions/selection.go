package actions

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dspavlov/docshelf/internal/client/api"
	"github.com/dspavlov/docshelf/internal/common"
)

// Selection stages files for one upload batch. Names must be unique within
// the batch; a duplicate is rejected outright and the caller is offered a
// "(n)"-suffixed alternative via SuggestName.
type Selection struct {
	mu    sync.Mutex
	files []api.UploadFile
	names map[string]struct{}
}

// NewSelection returns an empty staging area.
func NewSelection() *Selection {
	return &Selection{names: make(map[string]struct{})}
}

// Add stages one file. Duplicate names (case-insensitive) are rejected with
// common.ErrValidation; the selection is left unchanged.
func (s *Selection) Add(name string, content io.Reader) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: file name must not be empty", common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(name)
	if _, ok := s.names[key]; ok {
		return fmt.Errorf("%w: %q is already selected, try %q", common.ErrValidation, name, s.suggestLocked(name))
	}
	s.names[key] = struct{}{}
	s.files = append(s.files, api.UploadFile{Name: name, Content: content})
	return nil
}

// SuggestName returns name with a "(n)" suffix (before the extension) that
// does not collide with the current selection.
func (s *Selection) SuggestName(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestLocked(name)
}

func (s *Selection) suggestLocked(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s(%d)%s", base, n, ext)
		if _, ok := s.names[strings.ToLower(candidate)]; !ok {
			return candidate
		}
	}
}

// Files returns the staged files in insertion order.
func (s *Selection) Files() []api.UploadFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.UploadFile(nil), s.files...)
}

// Len reports the number of staged files.
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
	s.names = make(map[string]struct{})
}
