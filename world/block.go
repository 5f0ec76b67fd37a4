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

import (
	"strings"

	"github.com/Tnze/go-mc/level/block"
)

// PortalKind - який портал стоїть у блоці (якщо взагалі стоїть)
type PortalKind uint8

const (
	NoPortal PortalKind = iota
	NetherPortal
	EndPortal
)

func (k PortalKind) String() string {
	switch k {
	case NetherPortal:
		return "nether"
	case EndPortal:
		return "end"
	default:
		return "none"
	}
}

// Block - класифікація одного вокселя для перевірок безпеки.
// Це знімок на момент запиту: світ може змінитись одразу після нього.
type Block struct {
	Name     string // наприклад "minecraft:stone"
	Solid    bool   // на ньому можна стояти
	Passable bool   // крізь нього проходить тіло
	Lava     bool
	Fire     bool
	Track    bool // рейки
	Bed      bool
	Portal   PortalKind
}

// Hazard - блок завдає шкоди тому, хто в ньому стоїть
func (b Block) Hazard() bool { return b.Lava || b.Fire }

// Air - порожній блок, так виглядає і незавантажений чанк
var Air = Block{Name: "minecraft:air", Passable: true}

// passableBlocks - блоки без колізії, крізь які можна пройти
var passableBlocks = map[string]bool{
	"air": true, "cave_air": true, "void_air": true,
	"grass": true, "short_grass": true, "tall_grass": true, "fern": true, "large_fern": true,
	"dead_bush": true, "seagrass": true, "tall_seagrass": true, "vine": true, "glow_lichen": true,
	"dandelion": true, "poppy": true, "blue_orchid": true, "allium": true, "azure_bluet": true,
	"red_tulip": true, "orange_tulip": true, "white_tulip": true, "pink_tulip": true,
	"oxeye_daisy": true, "cornflower": true, "lily_of_the_valley": true,
	"sunflower": true, "lilac": true, "rose_bush": true, "peony": true,
	"torch": true, "wall_torch": true, "soul_torch": true, "soul_wall_torch": true,
	"redstone_torch": true, "redstone_wall_torch": true, "redstone_wire": true,
	"lever": true, "tripwire": true, "tripwire_hook": true, "snow": true,
	"water": true, "bubble_column": true, "light": true, "structure_void": true,
	"wheat": true, "carrots": true, "potatoes": true, "beetroots": true, "sugar_cane": true,
	"brown_mushroom": true, "red_mushroom": true, "ladder": true,
}

// Classify перетворює блок з go-mc у нашу класифікацію.
// Працюємо з ID блоку, бо властивості (facing, level...) тут не важливі.
func Classify(b block.Block) Block {
	if b == nil {
		return Air
	}
	return ClassifyName(b.ID())
}

// ClassifyName класифікує блок за його ID ("minecraft:lava", "lava" теж підходить)
func ClassifyName(id string) Block {
	name := strings.TrimPrefix(id, "minecraft:")
	b := Block{Name: "minecraft:" + name}

	switch {
	case name == "lava":
		b.Lava = true
		b.Passable = true
	case name == "fire" || name == "soul_fire":
		b.Fire = true
		b.Passable = true
	case name == "magma_block" || name == "campfire" || name == "soul_campfire":
		// на них можна стояти, але вони обпікають
		b.Fire = true
		b.Solid = true
	case name == "cactus" || name == "sweet_berry_bush" || name == "wither_rose" || name == "powder_snow":
		b.Fire = true
	case name == "nether_portal":
		b.Portal = NetherPortal
		b.Passable = true
	case name == "end_portal" || name == "end_gateway":
		b.Portal = EndPortal
		b.Passable = true
	case name == "rail" || strings.HasSuffix(name, "_rail"):
		b.Track = true
		b.Passable = true
	case strings.HasSuffix(name, "_bed"):
		b.Bed = true
		b.Solid = true
	case passableBlocks[name],
		strings.HasSuffix(name, "_sign"),
		strings.HasSuffix(name, "_banner"),
		strings.HasSuffix(name, "_button"),
		strings.HasSuffix(name, "_pressure_plate"),
		strings.HasSuffix(name, "_carpet"),
		strings.HasSuffix(name, "_sapling"):
		b.Passable = true
	default:
		b.Solid = true
	}
	return b
}
