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
	"testing"

	"go.uber.org/zap"

	"github.com/Tnze/go-mc/level/block"
)

func TestWorld_SaveAndOpen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnPosition = [3]int32{0, 100, 0}
	cfg.SpawnAngle = 90
	w := New(zap.NewNop(), "skylands", nil, cfg)

	blocks := map[BlockPos]string{
		{0, 64, 0}:     "minecraft:stone",
		{-20, 70, 35}:  "minecraft:obsidian",
		{600, -64, -1}: "minecraft:stone", // інший region файл
	}
	for pos, id := range blocks {
		var b block.Block = block.Stone{}
		if id == "minecraft:obsidian" {
			b = block.Obsidian{}
		}
		if err := w.SetBlock(pos, b); err != nil {
			t.Fatal(err)
		}
	}

	dir := t.TempDir()
	if err := w.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Open(zap.NewNop(), "skylands", dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := loaded.Spawn(), w.Spawn(); got != want {
		t.Errorf("Spawn() = %v, want %v", got, want)
	}
	for pos, id := range blocks {
		if got := loaded.BlockAt(pos); got.Name != id {
			t.Errorf("BlockAt(%v) = %s, want %s", pos, got.Name, id)
		}
		if got := loaded.BlockAt(pos.Up()); got != Air {
			t.Errorf("BlockAt(%v) = %+v, want air", pos.Up(), got)
		}
	}
	// чанку, якого не було, немає і на диску
	if got := loaded.BlockAt(BlockPos{-300, 64, 300}); got != Air {
		t.Errorf("missing chunk block = %+v, want air", got)
	}

	ws := NewWorlds(loaded)
	if spawn, ok := ws.Spawn("skylands"); !ok || spawn.Position != (Position{0.5, 100, 0.5}) {
		t.Errorf("Worlds.Spawn = %v, %v", spawn, ok)
	}
}
