package attendance

import (
	"sync"
	"time"
)

// Store serialises access to the workbook file. Every operation opens the file afresh
// so that a replaced file (e.g. after a download) is always picked up.
type Store struct {
	// OnChange is invoked after a check-in has been saved, while the store is still
	// locked.
	OnChange func()

	path string
	mu   sync.RWMutex
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Groups() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := Open(s.path)
	if err != nil {
		return nil, err
	}

	defer w.Close()

	return w.Groups(), nil
}

func (s *Store) Register(group string, date time.Time) (*Register, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := Open(s.path)
	if err != nil {
		return nil, err
	}

	defer w.Close()

	return w.Register(group, date)
}

func (s *Store) Table(group string) (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := Open(s.path)
	if err != nil {
		return nil, err
	}

	defer w.Close()

	return w.Table(group)
}

func (s *Store) CheckIn(group string, date time.Time, student string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := Open(s.path)
	if err != nil {
		return NotFound, err
	}

	defer w.Close()

	result, err := w.CheckIn(group, date, student)
	if err == nil && result == CheckedIn && s.OnChange != nil {
		s.OnChange()
	}

	return result, err
}

// View invokes f with the workbook path while holding a read lock.
func (s *Store) View(f func(path string) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return f(s.path)
}

// Replace invokes f with the workbook path while holding the write lock.
func (s *Store) Replace(f func(path string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return f(s.path)
}
