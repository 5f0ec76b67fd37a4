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

// Йоу, чат! Тут генеруємо зсуви для пошуку "кільцями".
// Кільце k - це рамка квадрата (2k+1)x(2k+1) навколо центру,
// тобто всі точки з відстанню Чебишова рівно k.
// Найчастіші радіуси рахуємо один раз при старті, як loadList для чанків.

package safety

import "golang.org/x/exp/constraints"

// Offset - горизонтальний зсув {dx, dz}
type Offset [2]int

// maxCachedRing - до якого радіусу зберігаємо готовий список
const maxCachedRing = 32

var (
	ringList []Offset // всі зсуви, впорядковані кільцями
	ringIdx  []int    // ringIdx[k] - кінець кільця k у ringList
)

func init() {
	ringIdx = make([]int, maxCachedRing+1)
	for k := 0; k <= maxCachedRing; k++ {
		ringList = appendRing(ringList, k)
		ringIdx[k] = len(ringList)
	}
}

// Ring повертає зсуви кільця k у фіксованому порядку:
// рядок за рядком (dz зростає), в рядку dx зростає.
// Кешовані зрізи мають cap == len, тож append робить копію і таблицю не псує.
func Ring(k int) []Offset {
	if k < 0 {
		return nil
	}
	if k <= maxCachedRing {
		start := 0
		if k > 0 {
			start = ringIdx[k-1]
		}
		return ringList[start:ringIdx[k]:ringIdx[k]]
	}
	return appendRing(make([]Offset, 0, 8*k), k)
}

// Offsets повертає всі зсуви з відстанню Чебишова від 0 до r включно,
// ближчі кільця першими.
func Offsets(r int) []Offset {
	if r < 0 {
		return nil
	}
	if r <= maxCachedRing {
		return ringList[:ringIdx[r]:ringIdx[r]]
	}
	all := make([]Offset, 0, (2*r+1)*(2*r+1))
	all = append(all, ringList...)
	for k := maxCachedRing + 1; k <= r; k++ {
		all = appendRing(all, k)
	}
	return all
}

func appendRing(dst []Offset, k int) []Offset {
	if k == 0 {
		return append(dst, Offset{0, 0})
	}
	for dz := -k; dz <= k; dz++ {
		if abs(dz) == k {
			// верхній і нижній рядки рамки - повністю
			for dx := -k; dx <= k; dx++ {
				dst = append(dst, Offset{dx, dz})
			}
		} else {
			// середні рядки - тільки крайні точки
			dst = append(dst, Offset{-k, dz}, Offset{k, dz})
		}
	}
	return dst
}

// VerticalOrder - порядок перебору висоти: 0, +1, -1, +2, -2, ..., +t, -t
func VerticalOrder(t int) []int {
	if t < 0 {
		t = 0
	}
	order := make([]int, 0, 2*t+1)
	order = append(order, 0)
	for d := 1; d <= t; d++ {
		order = append(order, d, -d)
	}
	return order
}

// chebyshev - відстань Чебишова від центру
func chebyshev(o Offset) int {
	return max(abs(o[0]), abs(o[1]))
}

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
