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

import "strings"

// Separator ділить рядок на вид і параметри: "p:Steve"
const Separator = ":"

// Kind - один вид призначення: світ, гравець, якір...
// Реалізації не повинні тримати стан реєстру.
type Kind interface {
	// Identifier - короткий унікальний id, наприклад "w"
	Identifier() string
	// Parse розбирає параметри після "id:"
	Parse(params string) (Target, error)
	// Suggest повертає варіанти параметрів для автодоповнення
	Suggest(partial string) []string
}

// matching - імена, що починаються з partial (без урахування регістру)
func matching(names []string, partial string) []string {
	prefix := strings.ToLower(partial)
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			out = append(out, name)
		}
	}
	return out
}
