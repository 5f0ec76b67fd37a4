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

	"FlowyWarp/world"
)

var errUnknownAnchor = errors.New("unknown anchor")

// AnchorSource - збережені якорі. Реалізує *anchor.Store.
type AnchorSource interface {
	Get(name string) (world.Location, bool)
	Names() []string
}

// AnchorKind - "a:<якір>"
type AnchorKind struct {
	anchors AnchorSource
}

func NewAnchorKind(anchors AnchorSource) AnchorKind { return AnchorKind{anchors: anchors} }

func (AnchorKind) Identifier() string { return "a" }

func (k AnchorKind) Parse(params string) (Target, error) {
	if params == "" {
		return Target{}, errEmptyParams
	}
	loc, ok := k.anchors.Get(params)
	if !ok {
		return Target{}, fmt.Errorf("%w: %s", errUnknownAnchor, params)
	}
	return Target{Location: loc}, nil
}

func (k AnchorKind) Suggest(partial string) []string {
	return matching(k.anchors.Names(), partial)
}
