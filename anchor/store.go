// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Йоу, чат! Якорі - це іменовані точки, до яких можна телепортуватись
// через "a:<назва>". Зберігаються у anchors.yml у вигляді
//
//	anchors:
//	  spawn-island: skylands:0.5,65,0.5:0:90
//
// тобто назва -> "world:x,y,z:pitch:yaw".

package anchor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"FlowyWarp/world"
)

var errBadName = errors.New("bad anchor name")

type file struct {
	Anchors map[string]string `yaml:"anchors"`
}

// Store - якорі в пам'яті, синхронізовані з файлом
type Store struct {
	log  *zap.Logger
	path string

	lock    sync.RWMutex
	anchors map[string]world.Location
}

// New створює порожнє сховище. З порожнім path нічого не пишеться на диск.
func New(logger *zap.Logger, path string) *Store {
	return &Store{
		log:     logger.Named("anchor"),
		path:    path,
		anchors: make(map[string]world.Location),
	}
}

// Load читає anchors.yml. Якщо файлу ще немає - повертає порожнє сховище.
// Зламані записи пропускаються; тоді разом зі сховищем повертається
// помилка з усіма ними.
func Load(logger *zap.Logger, path string) (*Store, error) {
	s := New(logger, path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read anchors: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	var errs error
	for name, text := range f.Anchors {
		loc, err := world.ParseLocation(text)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("anchor %q: %w", name, err))
			continue
		}
		s.anchors[name] = loc
	}
	if errs != nil {
		s.log.Warn("Skipped broken anchors", zap.Error(errs))
	}
	s.log.Info("Anchors loaded", zap.Int("count", len(s.anchors)))
	return s, errs
}

func (s *Store) Get(name string) (world.Location, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	loc, ok := s.anchors[name]
	return loc, ok
}

// Names - відсортовані назви якорів
func (s *Store) Names() []string {
	s.lock.RLock()
	names := maps.Keys(s.anchors)
	s.lock.RUnlock()
	slices.Sort(names)
	return names
}

// Set створює або переписує якір і зберігає файл
func (s *Store) Set(name string, loc world.Location) error {
	if name == "" || strings.ContainsAny(name, ": \t\n") {
		return fmt.Errorf("%w: %q", errBadName, name)
	}
	if !loc.IsValid() {
		return fmt.Errorf("anchor %q: invalid position %v", name, loc.Position)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	next := maps.Clone(s.anchors)
	next[name] = loc
	if err := s.save(next); err != nil {
		return err
	}
	s.anchors = next
	return nil
}

// Delete видаляє якір, false якщо його не було
func (s *Store) Delete(name string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.anchors[name]; !ok {
		return false, nil
	}
	next := maps.Clone(s.anchors)
	delete(next, name)
	if err := s.save(next); err != nil {
		return false, err
	}
	s.anchors = next
	return true, nil
}

// save пише anchors через тимчасовий файл, щоб не лишити напівзаписаний anchors.yml.
// Пам'ять міняють тільки після успішного save.
func (s *Store) save(anchors map[string]world.Location) error {
	if s.path == "" {
		return nil
	}
	f := file{Anchors: make(map[string]string, len(anchors))}
	for name, loc := range anchors {
		f.Anchors[name] = world.FormatLocation(loc)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode anchors: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o666); err != nil {
		return fmt.Errorf("write anchors: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return multierr.Append(fmt.Errorf("write anchors: %w", err), os.Remove(tmp))
	}
	return nil
}
