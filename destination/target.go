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

import "FlowyWarp/world"

// Target - результат розбору до перевірки безпеки
type Target struct {
	Kind     string
	Location world.Location
	// KnownSafe - шукати безпечне місце не треба (наприклад, поруч з гравцем)
	KnownSafe bool
}

// Resolved - кінцева точка, яку хост використає для телепортації
type Resolved struct {
	Kind     string
	Location world.Location
	// Adjusted - пошук зсунув точку відносно запитаної
	Adjusted bool
	// Unsafe - безпечного місця не знайшли, Location лишилась як у запиті.
	// Що з цим робити, вирішує викликач.
	Unsafe bool
}
