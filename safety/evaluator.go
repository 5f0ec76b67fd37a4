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

// Йоу, чат! Зараз розберемо, як ми перевіряємо, що гравця можна
// поставити в точку і він не згорить, не задихнеться в стіні
// і не полетить у порожнечу.
//
// Гравець займає два блоки: ноги (p) і голову (p+1). Під ногами
// має бути щось тверде. Світ може змінюватись прямо під час пошуку,
// тому ми нічого не кешуємо: кожна перевірка читає блок заново.

package safety

import (
	"errors"

	"go.uber.org/zap"

	"FlowyWarp/world"
)

var (
	// ErrNoSafeLocation - у вікні пошуку немає безпечної точки
	ErrNoSafeLocation = errors.New("no safe location found")
	// ErrNotABed - на місці ліжка вже не ліжко
	ErrNotABed = errors.New("bed is missing")
	// ErrNoSurface - у колонці немає жодного твердого блоку
	ErrNoSurface = errors.New("no solid block in column")
	// ErrUnknownWorld - світ не відповідає на запити
	ErrUnknownWorld = errors.New("unknown world")
)

const (
	DefaultTolerance = 4
	DefaultRadius    = 10
)

// Evaluator перевіряє і шукає безпечні точки. Тільки читає світ.
type Evaluator struct {
	log   *zap.Logger
	query world.Query

	// fallTolerance - на скільки блоків можна впасти до твердої землі.
	// 0 означає: під ногами одразу має бути твердий блок.
	fallTolerance int
}

// Option налаштовує Evaluator
type Option func(*Evaluator)

// WithFallTolerance дозволяє ставити гравця над землею,
// якщо тверда земля не глибше ніж n блоків під ногами
func WithFallTolerance(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.fallTolerance = n
		}
	}
}

// WithLogger вмикає debug логи пошуку
func WithLogger(log *zap.Logger) Option {
	return func(e *Evaluator) { e.log = log.Named("safety") }
}

func NewEvaluator(query world.Query, opts ...Option) *Evaluator {
	e := &Evaluator{log: zap.NewNop(), query: query}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsSafe - чи можна поставити гравця ногами в loc
func (e *Evaluator) IsSafe(loc world.Location) bool {
	return e.isSafeAt(loc.World, loc.Block())
}

func (e *Evaluator) isSafeAt(name string, feet world.BlockPos) bool {
	if !e.inWorld(name, feet) {
		return false
	}
	if !e.bodyFits(name, feet) {
		return false
	}
	return e.hasGround(name, feet)
}

// bodyFits - ноги і голова в прохідних блоках без лави і вогню
func (e *Evaluator) bodyFits(name string, feet world.BlockPos) bool {
	for _, pos := range [...]world.BlockPos{feet, feet.Up()} {
		b := e.query.BlockAt(name, pos)
		if !b.Passable || b.Hazard() {
			return false
		}
	}
	return true
}

// hasGround - під ногами твердий блок, або (з fallTolerance) тверда земля
// трохи нижче, а все між ними прохідне і безпечне
func (e *Evaluator) hasGround(name string, feet world.BlockPos) bool {
	pos := feet
	for fall := 0; fall <= e.fallTolerance; fall++ {
		pos = pos.Down()
		b := e.query.BlockAt(name, pos)
		if b.Hazard() {
			return false
		}
		if b.Solid {
			return true
		}
		if !b.Passable {
			// не стоїмо і не падаємо (кактус тощо)
			return false
		}
	}
	return false
}

// IsSafeForVehicle - вагонетка: у блоці під нею рейки, над ними вільно
func (e *Evaluator) IsSafeForVehicle(loc world.Location) bool {
	feet := loc.Block()
	if !e.inWorld(loc.World, feet) {
		return false
	}
	if !e.query.IsTrackAt(loc.World, feet) {
		return false
	}
	if b := e.query.BlockAt(loc.World, feet); b.Hazard() {
		return false
	}
	head := e.query.BlockAt(loc.World, feet.Up())
	return head.Passable && !head.Hazard()
}

func (e *Evaluator) inWorld(name string, pos world.BlockPos) bool {
	minY, maxY, ok := e.query.HeightRange(name)
	// голова теж має бути в світі
	return ok && pos[1] >= minY && pos[1]+1 <= maxY
}

// FindNearestSafe шукає найближчу безпечну точку навколо origin.
//
// Спочатку перебираються кільця по горизонталі (0..radius), потім висота
// в межах ±tolerance (0, +1, -1, +2, ...). Перша знайдена точка повертається
// одразу. Це не глобальний евклідовий мінімум: горизонтальна відстань
// важливіша за вертикальну. Гірший випадок - O(radius² · tolerance) запитів.
func (e *Evaluator) FindNearestSafe(origin world.Location, tolerance, radius int) (world.Location, bool) {
	if tolerance < 0 {
		tolerance = 0
	}
	if radius < 0 {
		radius = 0
	}
	center := origin.Block()
	vertical := VerticalOrder(tolerance)

	for _, off := range Offsets(radius) {
		for _, dy := range vertical {
			feet := center.Add(off[0], dy, off[1])
			if !e.isSafeAt(origin.World, feet) {
				continue
			}
			found := shifted(origin, off, dy, center)
			e.log.Debug("Found safe location",
				zap.Stringer("origin", origin),
				zap.Stringer("found", found))
			return found, true
		}
	}
	e.log.Debug("No safe location",
		zap.Stringer("origin", origin),
		zap.Int("tolerance", tolerance),
		zap.Int("radius", radius))
	return origin, false
}

// shifted будує результат пошуку. Нульовий зсув повертає origin як є,
// інакше X/Z зберігають дробову частину, а Y стає рівно на блок.
func shifted(origin world.Location, off Offset, dy int, center world.BlockPos) world.Location {
	if off == (Offset{}) && dy == 0 {
		return origin
	}
	p := origin.Position
	p[0] += float64(off[0])
	p[1] = float64(center[1] + dy)
	p[2] += float64(off[1])
	return origin.WithPosition(p)
}

// NearestSurfaceAbove - сканує колонку згори вниз від стелі світу до
// першого твердого блоку і повертає точку над ним.
// Якщо цей блок на самій стелі, точка над ним вже поза світом: ErrNoSurface.
func (e *Evaluator) NearestSurfaceAbove(column world.Location) (world.Location, error) {
	minY, maxY, ok := e.query.HeightRange(column.World)
	if !ok {
		return world.Location{}, ErrUnknownWorld
	}
	pos := column.Block()
	for y := maxY; y >= minY; y-- {
		pos[1] = y
		if e.query.BlockAt(column.World, pos).Solid {
			return surfaceAt(column, y+1, maxY)
		}
	}
	return world.Location{}, ErrNoSurface
}

// NearestSurfaceBelow - те саме, але знизу вгору від дна світу
func (e *Evaluator) NearestSurfaceBelow(column world.Location) (world.Location, error) {
	minY, maxY, ok := e.query.HeightRange(column.World)
	if !ok {
		return world.Location{}, ErrUnknownWorld
	}
	pos := column.Block()
	for y := minY; y <= maxY; y++ {
		pos[1] = y
		if e.query.BlockAt(column.World, pos).Solid {
			return surfaceAt(column, y+1, maxY)
		}
	}
	return world.Location{}, ErrNoSurface
}

func surfaceAt(column world.Location, y, maxY int) (world.Location, error) {
	if y > maxY {
		return world.Location{}, ErrNoSurface
	}
	p := column.Position
	p[1] = float64(y)
	return column.WithPosition(p), nil
}

// SafeBedSpawn шукає, де поставити гравця біля ліжка.
// Ліжко могли зламати, тому спочатку перевіряємо, що воно ще є.
// Кандидати - два бокові блоки біля голови ліжка, поперек його осі.
func (e *Evaluator) SafeBedSpawn(bedHead world.Location) (world.Location, error) {
	head := bedHead.Block()
	if !e.query.BlockAt(bedHead.World, head).Bed {
		return world.Location{}, ErrNotABed
	}

	// вісь ліжка: друга половина лежить поруч по X або по Z
	sides := [2]Offset{{0, 1}, {0, -1}}
	if e.query.BlockAt(bedHead.World, head.Add(0, 0, 1)).Bed ||
		e.query.BlockAt(bedHead.World, head.Add(0, 0, -1)).Bed {
		sides = [2]Offset{{1, 0}, {-1, 0}}
	}

	for _, side := range sides {
		feet := head.Add(side[0], 0, side[1])
		if e.isSafeAt(bedHead.World, feet) {
			return blockCenter(bedHead.World, feet).WithRotation(bedHead.Rotation), nil
		}
	}
	return world.Location{}, ErrNoSafeLocation
}

// blockCenter - центр блоку на рівні ніг
func blockCenter(name string, pos world.BlockPos) world.Location {
	return world.Location{
		World:    name,
		Position: world.Position{float64(pos[0]) + 0.5, float64(pos[1]), float64(pos[2]) + 0.5},
	}
}
