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

// Йоу, чат! Запис світу на диск. Ядро пошуку нічого не пише,
// це потрібно для тулзи create_world і тестів, які читають світ з диску.

package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/save"
	"github.com/Tnze/go-mc/save/region"
)

// PutChunk записує чанк у region файл, створюючи файл за потреби
func (p ChunkProvider) PutChunk(pos [2]int32, c *level.Chunk) (errRet error) {
	var chunk save.Chunk
	if err := level.ChunkToSave(c, &chunk); err != nil {
		return fmt.Errorf("encode chunk data fail: %w", err)
	}
	chunk.XPos, chunk.ZPos = pos[0], pos[1]

	// 1 = gzip
	data, err := chunk.Data(1)
	if err != nil {
		return fmt.Errorf("record chunk data fail: %w", err)
	}

	rx, rz := region.At(int(pos[0]), int(pos[1]))
	r, err := p.openRegion(rx, rz)
	if errors.Is(err, fs.ErrNotExist) {
		r, err = region.Create(filepath.Join(p.dir, fmt.Sprintf("r.%d.%d.mca", rx, rz)))
	}
	if err != nil {
		return fmt.Errorf("open region fail: %w", err)
	}
	defer func(r *region.Region) {
		err2 := r.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close region fail: %w", err2)
		}
	}(r)

	x, z := region.In(int(pos[0]), int(pos[1]))
	if err := r.WriteSector(x, z, data); err != nil {
		return fmt.Errorf("write sector fail: %w", err)
	}
	return nil
}

// Save записує level.dat і всі завантажені чанки у папку dir
func (w *World) Save(dir string) error {
	regionDir := filepath.Join(dir, "region")
	if err := os.MkdirAll(regionDir, 0o755); err != nil {
		return err
	}
	if err := writeLevel(filepath.Join(dir, "level.dat"), w.name, w.config); err != nil {
		return err
	}

	w.chunksLock.RLock()
	chunks := make(map[[2]int32]*LoadedChunk, len(w.chunks))
	for pos, lc := range w.chunks {
		chunks[pos] = lc
	}
	w.chunksLock.RUnlock()

	provider := NewProvider(regionDir, nil)
	var errs error
	for pos, lc := range chunks {
		lc.Lock()
		err := provider.PutChunk(pos, lc.Chunk)
		lc.Unlock()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("chunk %v: %w", pos, err))
		}
	}
	w.log.Debug("Saved world", zap.String("dir", dir), zap.Int("chunks", len(chunks)))
	return errs
}

func writeLevel(path, name string, config Config) (errRet error) {
	lv := save.Level{
		Data: save.LevelData{
			Version: struct {
				ID       int32 `nbt:"Id"`
				Name     string
				Series   string
				Snapshot byte
			}{
				ID:     2975,
				Name:   "1.19.4",
				Series: "main",
			},
			LevelName:      name,
			GameType:       1,
			LastPlayed:     time.Now().UnixMilli(),
			SpawnX:         config.SpawnPosition[0],
			SpawnY:         config.SpawnPosition[1],
			SpawnZ:         config.SpawnPosition[2],
			SpawnAngle:     config.SpawnAngle,
			Difficulty:     2,
			GameRules:      make(map[string]string),
			DataVersion:    3337,
			Initialized:    true,
			StorageVersion: 19133,
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		err2 := f.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close level.dat fail: %w", err2)
		}
	}(f)

	gw := gzip.NewWriter(f)
	if err := nbt.NewEncoder(gw).Encode(lv, ""); err != nil {
		return fmt.Errorf("encode level.dat fail: %w", err)
	}
	return gw.Close()
}
