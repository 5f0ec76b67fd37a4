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

// Query - read-only доступ до вокселів світу за іменем світу.
// Реалізації мають бути безпечні для виклику з будь-якої горутини;
// знімків не потрібно, кожен запит бачить поточний стан світу.
type Query interface {
	// BlockAt повертає класифікацію блоку. Невідомий світ або
	// незавантажена область повертає Air.
	BlockAt(world string, pos BlockPos) Block
	// IsTrackAt - чи лежать у блоці рейки
	IsTrackAt(world string, pos BlockPos) bool
	// HeightRange - межі висоти світу включно, ok=false якщо світу немає
	HeightRange(world string) (minY, maxY int, ok bool)
}
