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

// Йоу, чат! Тут список гравців, до яких можна телепортуватись.
// Хост сам повідомляє нам хто зайшов, вийшов і куди перемістився,
// а ми лише відповідаємо на питання "де зараз гравець X?"

package world

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Player - те, що нам треба знати про гравця для телепортації
type Player struct {
	Name     string    // нікнейм гравця
	UUID     uuid.UUID // унікальний ідентифікатор
	Location Location  // де гравець стоїть зараз
	// Bed - голова ліжка, на якому гравець спав востаннє (nil якщо ніде)
	Bed *Location
}

var ErrPlayerNotFound = errors.New("player not found")

// PlayerList - гравці онлайн. Безпечний для паралельного використання.
type PlayerList struct {
	lock    sync.RWMutex
	players map[uuid.UUID]*Player

	// offline - звідки брати позицію гравця, якого немає онлайн (тільки за UUID)
	offline      *PlayerProvider
	offlineWorld string
}

func NewPlayerList() *PlayerList {
	return &PlayerList{players: make(map[uuid.UUID]*Player)}
}

// WithOffline дозволяє шукати гравців за UUID у playerdata,
// якщо їх немає онлайн. Позиція вважається у світі worldName.
func (pl *PlayerList) WithOffline(provider PlayerProvider, worldName string) *PlayerList {
	pl.lock.Lock()
	pl.offline = &provider
	pl.offlineWorld = worldName
	pl.lock.Unlock()
	return pl
}

// Join додає гравця або оновлює існуючий запис
func (pl *PlayerList) Join(p Player) {
	pl.lock.Lock()
	pl.players[p.UUID] = &p
	pl.lock.Unlock()
}

func (pl *PlayerList) Leave(id uuid.UUID) {
	pl.lock.Lock()
	delete(pl.players, id)
	pl.lock.Unlock()
}

// Move оновлює позицію гравця, false якщо його немає онлайн
func (pl *PlayerList) Move(id uuid.UUID, loc Location) bool {
	pl.lock.Lock()
	defer pl.lock.Unlock()
	p, ok := pl.players[id]
	if ok {
		p.Location = loc
	}
	return ok
}

// SetBed запам'ятовує ліжко гравця
func (pl *PlayerList) SetBed(id uuid.UUID, bedHead Location) bool {
	pl.lock.Lock()
	defer pl.lock.Unlock()
	p, ok := pl.players[id]
	if ok {
		p.Bed = &bedHead
	}
	return ok
}

// Lookup шукає гравця за ніком (без урахування регістру) або за UUID.
// Повертає копію, тому викликач не може зламати наш стан.
func (pl *PlayerList) Lookup(nameOrID string) (Player, error) {
	pl.lock.RLock()
	// точний збіг імені важливіший: Steve і steve можуть бути онлайн разом
	var folded *Player
	for _, p := range pl.players {
		if p.Name == nameOrID {
			player := *p
			pl.lock.RUnlock()
			return player, nil
		}
		if strings.EqualFold(p.Name, nameOrID) && (folded == nil || p.Name < folded.Name) {
			folded = p
		}
	}
	if folded != nil {
		player := *folded
		pl.lock.RUnlock()
		return player, nil
	}
	id, err := uuid.Parse(nameOrID)
	if err != nil {
		pl.lock.RUnlock()
		return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, nameOrID)
	}
	if p, ok := pl.players[id]; ok {
		player := *p
		pl.lock.RUnlock()
		return player, nil
	}
	offline, offlineWorld := pl.offline, pl.offlineWorld
	pl.lock.RUnlock()

	if offline == nil {
		return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, nameOrID)
	}
	loc, err := offline.LastLocation(id, offlineWorld)
	if err != nil {
		return Player{}, fmt.Errorf("%w: %s: %v", ErrPlayerNotFound, nameOrID, err)
	}
	return Player{UUID: id, Location: loc}, nil
}

// Names - відсортовані ніки гравців онлайн
func (pl *PlayerList) Names() []string {
	pl.lock.RLock()
	names := make([]string, 0, len(pl.players))
	for _, p := range pl.players {
		names = append(names, p.Name)
	}
	pl.lock.RUnlock()
	slices.Sort(names)
	return names
}
