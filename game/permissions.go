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

package game

import (
	"strings"

	"FlowyWarp/destination"
)

// StaticPermissions - права з config.toml: нік -> список прав.
// Права під ключем "*" має кожен. Право "*" дозволяє все,
// "multiverse.teleport.self.*" - все, що починається з "multiverse.teleport.self.".
type StaticPermissions map[string][]string

var _ destination.PermissionChecker = StaticPermissions(nil)

func (p StaticPermissions) HasPermission(issuer destination.Issuer, node string) bool {
	for _, key := range [...]string{issuer.Name(), "*"} {
		for _, granted := range p[key] {
			if matchNode(granted, node) {
				return true
			}
		}
	}
	return false
}

func matchNode(granted, node string) bool {
	if granted == "*" || granted == node {
		return true
	}
	prefix, wildcard := strings.CutSuffix(granted, "*")
	return wildcard && strings.HasPrefix(node, prefix)
}
