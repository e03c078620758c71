// Package prefs keeps the user's display preferences between runs.
package prefs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/trezcool/classease/core/student"
)

const sortTypeKey = "sort_type"

// Store is a YAML backed preference file.
type Store struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// Open loads the preferences at path. A missing file is not an error.
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(sortTypeKey, string(student.DefaultSortType))

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "reading preferences %s", path)
	}
	return &Store{path: path, v: v}, nil
}

// SortType returns the stored sort type; missing or unknown values give student.DefaultSortType.
func (s *Store) SortType() student.SortType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return student.ParseSortType(s.v.GetString(sortTypeKey))
}

func (s *Store) SetSortType(st student.SortType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(sortTypeKey, string(student.ParseSortType(string(st))))
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating preferences dir")
	}
	return errors.Wrapf(s.v.WriteConfigAs(s.path), "writing preferences %s", s.path)
}
