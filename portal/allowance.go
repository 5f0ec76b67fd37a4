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

package portal

import (
	"errors"
	"fmt"
	"strings"

	"FlowyWarp/world"
)

// Type - тип порталу, який стоїть у світі
type Type = world.PortalKind

const (
	Nether = world.NetherPortal
	End    = world.EndPortal
)

// Allowance - які портали дозволено створювати автоматично
type Allowance uint8

const (
	AllowNone Allowance = iota
	AllowAll
	AllowNether
	AllowEnd
)

var errUnknownAllowance = errors.New("unknown portal allowance")

// Allows - чи дозволяє політика портал типу t.
// None не дозволяє нічого, All - все, Nether та End - лише свій тип.
func (a Allowance) Allows(t Type) bool {
	switch a {
	case AllowAll:
		return true
	case AllowNether:
		return t == Nether
	case AllowEnd:
		return t == End
	default:
		return false
	}
}

func (a Allowance) String() string {
	switch a {
	case AllowAll:
		return "all"
	case AllowNether:
		return "nether"
	case AllowEnd:
		return "end"
	default:
		return "none"
	}
}

// ParseAllowance розбирає "none", "all", "nether" або "end" без урахування регістру
func ParseAllowance(s string) (Allowance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return AllowNone, nil
	case "all":
		return AllowAll, nil
	case "nether":
		return AllowNether, nil
	case "end":
		return AllowEnd, nil
	}
	return AllowNone, fmt.Errorf("%w: %q", errUnknownAllowance, s)
}

func (a *Allowance) UnmarshalText(text []byte) (err error) {
	*a, err = ParseAllowance(string(text))
	return
}

func (a Allowance) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
