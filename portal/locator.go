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

// Йоу, чат! Локатор відповідає на два питання: "чи стоїть біля мене портал?"
// і "де найближчий портал, через який мені можна пройти, і де біля нього стати?"
// Пошук іде тими ж кільцями, що і пошук безпечної точки, тому результат
// детермінований.

package portal

import (
	"errors"

	"FlowyWarp/safety"
	"FlowyWarp/world"
)

var (
	ErrNoPortal         = errors.New("no allowed portal in range")
	ErrPortalNotAllowed = errors.New("portals are not allowed")
)

// exitSides - де стати біля порталу, по порядку перевірки
var exitSides = [...]safety.Offset{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

type Locator struct {
	query     world.Query
	evaluator *safety.Evaluator
}

func NewLocator(query world.Query, evaluator *safety.Evaluator) *Locator {
	return &Locator{query: query, evaluator: evaluator}
}

// FindPortalNextTo шукає портал у кубі 3x3x3 навколо блоку loc.
// Центр перевіряється першим, далі рівень ніг, вище, нижче.
func (l *Locator) FindPortalNextTo(loc world.Location) (world.BlockPos, Type, bool) {
	center := loc.Block()
	for _, dy := range safety.VerticalOrder(1) {
		for _, off := range safety.Offsets(1) {
			pos := center.Add(off[0], dy, off[1])
			if b := l.query.BlockAt(loc.World, pos); b.Portal != world.NoPortal {
				return pos, b.Portal, true
			}
		}
	}
	return world.BlockPos{}, world.NoPortal, false
}

// NearestAllowedPortal шукає найближчий портал дозволеного типу, біля
// якого можна безпечно стати. Повертає точку виходу (центр блоку)
// з поворотом origin і тип порталу.
func (l *Locator) NearestAllowedPortal(origin world.Location, allow Allowance, tolerance, radius int) (world.Location, Type, error) {
	if allow == AllowNone {
		return world.Location{}, world.NoPortal, ErrPortalNotAllowed
	}
	center := origin.Block()
	vertical := safety.VerticalOrder(tolerance)
	for _, off := range safety.Offsets(max(radius, 0)) {
		for _, dy := range vertical {
			pos := center.Add(off[0], dy, off[1])
			b := l.query.BlockAt(origin.World, pos)
			if b.Portal == world.NoPortal || !allow.Allows(b.Portal) {
				continue
			}
			if exit, ok := l.exitNear(origin, pos); ok {
				return exit, b.Portal, nil
			}
		}
	}
	return world.Location{}, world.NoPortal, ErrNoPortal
}

func (l *Locator) exitNear(origin world.Location, portal world.BlockPos) (world.Location, bool) {
	// спочатку поруч на тому ж рівні, потім на блок вище (портал Енду лежить у підлозі)
	for _, dy := range [...]int{0, 1} {
		for _, side := range exitSides {
			if exit, ok := l.exitAt(origin, portal.Add(side[0], dy, side[1])); ok {
				return exit, true
			}
		}
	}
	return world.Location{}, false
}

func (l *Locator) exitAt(origin world.Location, feet world.BlockPos) (world.Location, bool) {
	exit := world.Location{
		World:    origin.World,
		Position: world.Position{float64(feet[0]) + 0.5, float64(feet[1]), float64(feet[2]) + 0.5},
		Rotation: origin.Rotation,
	}
	return exit, l.evaluator.IsSafe(exit)
}
