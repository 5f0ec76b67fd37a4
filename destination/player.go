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

	"FlowyWarp/safety"
	"FlowyWarp/world"
)

var errNoBed = errors.New("player has no bed")

// PlayerSource - гравці сервера. Реалізує *world.PlayerList.
type PlayerSource interface {
	Lookup(nameOrID string) (world.Player, error)
	Names() []string
}

// PlayerKind - "p:<нік або uuid>", туди, де гравець стоїть зараз
type PlayerKind struct {
	players PlayerSource
}

func NewPlayerKind(players PlayerSource) PlayerKind { return PlayerKind{players: players} }

func (PlayerKind) Identifier() string { return "p" }

func (k PlayerKind) Parse(params string) (Target, error) {
	if params == "" {
		return Target{}, errEmptyParams
	}
	p, err := k.players.Lookup(params)
	if err != nil {
		return Target{}, err
	}
	// гравець там стоїть, отже там можна стояти
	return Target{Location: p.Location, KnownSafe: true}, nil
}

func (k PlayerKind) Suggest(partial string) []string {
	return matching(k.players.Names(), partial)
}

// BedKind - "b:<гравець>", біля ліжка гравця
type BedKind struct {
	players   PlayerSource
	evaluator *safety.Evaluator
}

func NewBedKind(players PlayerSource, evaluator *safety.Evaluator) BedKind {
	return BedKind{players: players, evaluator: evaluator}
}

func (BedKind) Identifier() string { return "b" }

func (k BedKind) Parse(params string) (Target, error) {
	if params == "" {
		return Target{}, errEmptyParams
	}
	p, err := k.players.Lookup(params)
	if err != nil {
		return Target{}, err
	}
	if p.Bed == nil {
		return Target{}, fmt.Errorf("%w: %s", errNoBed, params)
	}

	loc, err := k.evaluator.SafeBedSpawn(*p.Bed)
	switch {
	case errors.Is(err, safety.ErrNotABed):
		return Target{}, fmt.Errorf("%w: %w", ErrPreconditionFailed, err)
	case errors.Is(err, safety.ErrNoSafeLocation):
		// обидва боки зайняті, нехай звичайний пошук шукає далі
		return Target{Location: *p.Bed}, nil
	case err != nil:
		return Target{}, err
	}
	return Target{Location: loc, KnownSafe: true}, nil
}

func (k BedKind) Suggest(partial string) []string {
	return matching(k.players.Names(), partial)
}
