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

package world

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Worlds - набір світів за іменем. Реалізує Query, тому пошук безпечного
// місця може працювати з будь-яким світом сервера.
type Worlds struct {
	lock   sync.RWMutex
	worlds map[string]*World
}

var _ Query = (*Worlds)(nil)

func NewWorlds(worlds ...*World) *Worlds {
	ws := &Worlds{worlds: make(map[string]*World, len(worlds))}
	for _, w := range worlds {
		ws.worlds[w.Name()] = w
	}
	return ws
}

// Add додає або замінює світ з таким самим іменем
func (ws *Worlds) Add(w *World) {
	ws.lock.Lock()
	ws.worlds[w.Name()] = w
	ws.lock.Unlock()
}

func (ws *Worlds) Remove(name string) {
	ws.lock.Lock()
	delete(ws.worlds, name)
	ws.lock.Unlock()
}

func (ws *Worlds) Get(name string) (*World, bool) {
	ws.lock.RLock()
	defer ws.lock.RUnlock()
	w, ok := ws.worlds[name]
	return w, ok
}

// Names - відсортовані імена світів, для підказок
func (ws *Worlds) Names() []string {
	ws.lock.RLock()
	names := maps.Keys(ws.worlds)
	ws.lock.RUnlock()
	slices.Sort(names)
	return names
}

// Spawn - точка спавну світу з level.dat
func (ws *Worlds) Spawn(name string) (Location, bool) {
	w, ok := ws.Get(name)
	if !ok {
		return Location{}, false
	}
	return w.Spawn(), true
}

func (ws *Worlds) BlockAt(world string, pos BlockPos) Block {
	w, ok := ws.Get(world)
	if !ok {
		return Air
	}
	return w.BlockAt(pos)
}

func (ws *Worlds) IsTrackAt(world string, pos BlockPos) bool {
	return ws.BlockAt(world, pos).Track
}

func (ws *Worlds) HeightRange(world string) (minY, maxY int, ok bool) {
	w, ok := ws.Get(world)
	if !ok {
		return 0, 0, false
	}
	minY, maxY = w.HeightRange()
	return minY, maxY, true
}
