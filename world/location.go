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

// Йоу, чат! Тут живуть базові типи координат.
// Location - це точка в конкретному світі плюс напрямок погляду.
// Всі типи тут передаються по значенню, тому вони фактично незмінні.

package world

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Position - позиція у 3D просторі
// [0] - x (схід/захід)
// [1] - y (верх/низ)
// [2] - z (північ/південь)
type Position [3]float64

// Rotation - кути повороту
// [0] - yaw (поворот навколо вертикальної осі)
// [1] - pitch (нахил голови)
type Rotation [2]float32

// BlockPos - цілочисельні координати одного вокселя
type BlockPos [3]int

// IsValid перевіряє чи координати позиції є допустимими числами
// (не NaN і не нескінченність)
func (p Position) IsValid() bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsNaN(p[2]) &&
		!math.IsInf(p[0], 0) && !math.IsInf(p[1], 0) && !math.IsInf(p[2], 0)
}

// Block повертає координати блоку, в якому знаходиться позиція
// Використовуємо Floor, бо int() для від'ємних чисел округлює до нуля
func (p Position) Block() BlockPos {
	return BlockPos{
		int(math.Floor(p[0])),
		int(math.Floor(p[1])),
		int(math.Floor(p[2])),
	}
}

// Add зсуває блокову позицію
func (b BlockPos) Add(dx, dy, dz int) BlockPos {
	return BlockPos{b[0] + dx, b[1] + dy, b[2] + dz}
}

func (b BlockPos) Up() BlockPos   { return b.Add(0, 1, 0) }
func (b BlockPos) Down() BlockPos { return b.Add(0, -1, 0) }

// Location - позиція в конкретному світі разом з напрямком погляду
type Location struct {
	World string
	Position
	Rotation
}

// At створює Location без повороту
func At(world string, x, y, z float64) Location {
	return Location{World: world, Position: Position{x, y, z}}
}

// Block повертає блок під ногами (той, в якому стоять ноги)
func (l Location) Block() BlockPos { return l.Position.Block() }

// WithPosition повертає копію з новою позицією, поворот і світ зберігаються
func (l Location) WithPosition(p Position) Location {
	l.Position = p
	return l
}

// WithRotation повертає копію з новим поворотом
func (l Location) WithRotation(r Rotation) Location {
	l.Rotation = r
	return l
}

func (l Location) String() string { return FormatLocation(l) }

var errBadLocation = errors.New("bad location")

// FormatLocation записує Location в текстовому форматі
// "world:x,y,z:pitch:yaw" - так само зберігаються якорі на диску
func FormatLocation(l Location) string {
	var sb strings.Builder
	sb.WriteString(l.World)
	sb.WriteByte(':')
	sb.WriteString(formatFloat(l.Position[0]))
	sb.WriteByte(',')
	sb.WriteString(formatFloat(l.Position[1]))
	sb.WriteByte(',')
	sb.WriteString(formatFloat(l.Position[2]))
	sb.WriteByte(':')
	sb.WriteString(formatFloat(float64(l.Rotation[1])))
	sb.WriteByte(':')
	sb.WriteString(formatFloat(float64(l.Rotation[0])))
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseLocation розбирає "world:x,y,z[:pitch:yaw]"
// Поворот необов'язковий, але якщо є pitch - має бути і yaw
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 4 {
		return Location{}, fmt.Errorf("%w: expected world:x,y,z[:pitch:yaw], got %q", errBadLocation, s)
	}
	if parts[0] == "" {
		return Location{}, fmt.Errorf("%w: empty world name", errBadLocation)
	}

	pos, err := ParsePosition(parts[1])
	if err != nil {
		return Location{}, err
	}
	loc := Location{World: parts[0], Position: pos}

	if len(parts) == 4 {
		pitch, err := strconv.ParseFloat(parts[2], 32)
		if err != nil {
			return Location{}, fmt.Errorf("%w: pitch %q", errBadLocation, parts[2])
		}
		yaw, err := strconv.ParseFloat(parts[3], 32)
		if err != nil {
			return Location{}, fmt.Errorf("%w: yaw %q", errBadLocation, parts[3])
		}
		loc.Rotation = Rotation{float32(yaw), float32(pitch)}
	}
	return loc, nil
}

// ParsePosition розбирає "x,y,z"
func ParsePosition(s string) (Position, error) {
	coords := strings.Split(s, ",")
	if len(coords) != 3 {
		return Position{}, fmt.Errorf("%w: expected x,y,z, got %q", errBadLocation, s)
	}
	var p Position
	for i, c := range coords {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return Position{}, fmt.Errorf("%w: coordinate %q", errBadLocation, c)
		}
		p[i] = v
	}
	if !p.IsValid() {
		return Position{}, fmt.Errorf("%w: non-finite coordinate in %q", errBadLocation, s)
	}
	return p, nil
}
