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

// create_world пише тестовий світ "skylands": порожнеча і один камінь
// на (0, 64, 0) під спавном (0, 100, 0), поруч - острів з порталом
// Незеру і ліжком. Зручно перевіряти пошук безпечного місця руками:
//
//	go run ./tools/create_world -out world
//	go run . resolve w:skylands
package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/Tnze/go-mc/level/block"

	"FlowyWarp/world"
)

var (
	out  = flag.String("out", "world", "Directory to write the world into")
	name = flag.String("name", "skylands", "World name stored in level.dat")
)

func main() {
	flag.Parse()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := world.DefaultConfig()
	cfg.SpawnPosition = [3]int32{0, 100, 0}
	w := world.New(logger.Named(*name), *name, nil, cfg)

	set := func(pos world.BlockPos, b block.Block) {
		if err := w.SetBlock(pos, b); err != nil {
			logger.Fatal("Set block fail", zap.Any("pos", pos), zap.Error(err))
		}
	}
	byID := func(id string) block.Block {
		for _, b := range block.StateList {
			if b.ID() == id {
				return b
			}
		}
		logger.Fatal("Unknown block", zap.String("id", id))
		return nil
	}

	// один камінь під спавном
	set(world.BlockPos{0, 64, 0}, block.Stone{})

	// острів 9x9 на схід, з порталом Незеру і ліжком
	for x := 20; x <= 28; x++ {
		for z := -4; z <= 4; z++ {
			set(world.BlockPos{x, 63, z}, block.Stone{})
		}
	}
	for y := 64; y <= 68; y++ {
		set(world.BlockPos{24, y, -1}, block.Obsidian{})
		set(world.BlockPos{24, y, 2}, block.Obsidian{})
	}
	set(world.BlockPos{24, 68, 0}, block.Obsidian{})
	set(world.BlockPos{24, 68, 1}, block.Obsidian{})
	portal := byID("minecraft:nether_portal")
	for y := 64; y <= 67; y++ {
		set(world.BlockPos{24, y, 0}, portal)
		set(world.BlockPos{24, y, 1}, portal)
	}
	bed := byID("minecraft:red_bed")
	set(world.BlockPos{21, 64, 3}, bed)
	set(world.BlockPos{22, 64, 3}, bed)

	// лава в кутку острова
	set(world.BlockPos{27, 63, -3}, byID("minecraft:lava"))

	if err := w.Save(*out); err != nil {
		logger.Fatal("Save world fail", zap.String("dir", *out), zap.Error(err))
	}
	logger.Info("World created", zap.String("dir", *out), zap.Stringer("spawn", w.Spawn()))
}
