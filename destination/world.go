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

package destination

import (
	"errors"
	"fmt"

	"FlowyWarp/world"
)

var (
	errEmptyParams  = errors.New("missing destination name")
	errUnknownWorld = errors.New("unknown world")
)

// WorldSource - світи сервера. Реалізує *world.Worlds.
type WorldSource interface {
	Spawn(name string) (world.Location, bool)
	Names() []string
}

// WorldKind - "w:<світ>", точка спавну світу
type WorldKind struct {
	worlds WorldSource
}

func NewWorldKind(worlds WorldSource) WorldKind { return WorldKind{worlds: worlds} }

func (WorldKind) Identifier() string { return "w" }

func (k WorldKind) Parse(params string) (Target, error) {
	if params == "" {
		return Target{}, errEmptyParams
	}
	spawn, ok := k.worlds.Spawn(params)
	if !ok {
		return Target{}, fmt.Errorf("%w: %s", errUnknownWorld, params)
	}
	// на спавні часто будують, тому завжди перевіряємо
	return Target{Location: spawn}, nil
}

func (k WorldKind) Suggest(partial string) []string {
	return matching(k.worlds.Names(), partial)
}

// ExactKind - "e:<світ>:<x>,<y>,<z>[:<pitch>:<yaw>]", точні координати.
// Хто пише координати руками, знає куди йде, тому пошук не запускаємо.
type ExactKind struct {
	worlds WorldSource
}

func NewExactKind(worlds WorldSource) ExactKind { return ExactKind{worlds: worlds} }

func (ExactKind) Identifier() string { return "e" }

func (k ExactKind) Parse(params string) (Target, error) {
	loc, err := world.ParseLocation(params)
	if err != nil {
		return Target{}, err
	}
	if _, ok := k.worlds.Spawn(loc.World); !ok {
		return Target{}, fmt.Errorf("%w: %s", errUnknownWorld, loc.World)
	}
	return Target{Location: loc, KnownSafe: true}, nil
}

// Suggest підказує лише назву світу з ':' - координати підказати неможливо
func (k ExactKind) Suggest(partial string) []string {
	names := matching(k.worlds.Names(), partial)
	for i := range names {
		names[i] += Separator
	}
	return names
}
