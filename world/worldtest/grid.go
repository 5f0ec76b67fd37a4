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

// Package worldtest містить світ у пам'яті для тестів пошуку і телепортації.
package worldtest

import (
	"sync"

	"FlowyWarp/world"
)

// Grid - world.Query поверх мапи блоків. Все, що не задано, - повітря.
type Grid struct {
	mu      sync.Mutex
	heights map[string][2]int
	blocks  map[string]map[world.BlockPos]world.Block
	queries int
}

var _ world.Query = (*Grid)(nil)

func NewGrid() *Grid {
	return &Grid{
		heights: make(map[string][2]int),
		blocks:  make(map[string]map[world.BlockPos]world.Block),
	}
}

// AddWorld реєструє світ з межами висоти включно
func (g *Grid) AddWorld(name string, minY, maxY int) *Grid {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.heights[name] = [2]int{minY, maxY}
	if g.blocks[name] == nil {
		g.blocks[name] = make(map[world.BlockPos]world.Block)
	}
	return g
}

// Set ставить блок за ID, наприклад "stone" або "minecraft:lava"
func (g *Grid) Set(name string, pos world.BlockPos, id string) *Grid {
	return g.SetBlock(name, pos, world.ClassifyName(id))
}

func (g *Grid) SetBlock(name string, pos world.BlockPos, b world.Block) *Grid {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.blocks[name] == nil {
		g.blocks[name] = make(map[world.BlockPos]world.Block)
	}
	g.blocks[name][pos] = b
	return g
}

// Fill заповнює прямокутний об'єм від from до to включно
func (g *Grid) Fill(name string, from, to world.BlockPos, id string) *Grid {
	b := world.ClassifyName(id)
	for x := from[0]; x <= to[0]; x++ {
		for y := from[1]; y <= to[1]; y++ {
			for z := from[2]; z <= to[2]; z++ {
				g.SetBlock(name, world.BlockPos{x, y, z}, b)
			}
		}
	}
	return g
}

// Queries - скільки разів читали блоки, щоб перевіряти межі пошуку
func (g *Grid) Queries() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.queries
}

func (g *Grid) BlockAt(name string, pos world.BlockPos) world.Block {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queries++
	if b, ok := g.blocks[name][pos]; ok {
		return b
	}
	return world.Air
}

func (g *Grid) IsTrackAt(name string, pos world.BlockPos) bool {
	return g.BlockAt(name, pos).Track
}

func (g *Grid) HeightRange(name string) (minY, maxY int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	h, ok := g.heights[name]
	return h[0], h[1], ok
}
