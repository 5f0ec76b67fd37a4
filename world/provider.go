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

// Йоу, чат! Тут ми читаємо збережений світ з диску:
// level.dat (спавн), region/*.mca (чанки) і playerdata/*.dat (гравці).
// Всі ці файли стиснуті gzip, а всередині - NBT.

package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/save"
	"github.com/Tnze/go-mc/save/region"
)

// ChunkProvider читає чанки з папки region
type ChunkProvider struct {
	dir     string        // директорія з регіонами
	limiter *rate.Limiter // обмежувач швидкості завантаження
}

func NewProvider(dir string, limiter *rate.Limiter) ChunkProvider {
	return ChunkProvider{dir: dir, limiter: limiter}
}

var ErrReachRateLimit = errors.New("reach rate limit")

var errChunkNotExist = errors.New("ErrChunkNotExist")

func (p ChunkProvider) GetChunk(pos [2]int32) (c *level.Chunk, errRet error) {
	if p.limiter != nil && !p.limiter.Allow() {
		return nil, ErrReachRateLimit
	}
	r, err := p.openRegion(region.At(int(pos[0]), int(pos[1])))
	if errors.Is(err, fs.ErrNotExist) {
		// немає регіону - немає і чанку, нові файли не створюємо
		return nil, errChunkNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("open region fail: %w", err)
	}
	defer func(r *region.Region) {
		err2 := r.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close region fail: %w", err2)
		}
	}(r)

	x, z := region.In(int(pos[0]), int(pos[1]))
	if !r.ExistSector(x, z) {
		return nil, errChunkNotExist
	}

	data, err := r.ReadSector(x, z)
	if err != nil {
		return nil, fmt.Errorf("read sector fail: %w", err)
	}

	var chunk save.Chunk
	if err := chunk.Load(data); err != nil {
		return nil, fmt.Errorf("parse chunk data fail: %w", err)
	}

	c, err = level.ChunkFromSave(&chunk)
	if err != nil {
		return nil, fmt.Errorf("load chunk data fail: %w", err)
	}
	return c, nil
}

func (p ChunkProvider) openRegion(rx, rz int) (*region.Region, error) {
	filename := fmt.Sprintf("r.%d.%d.mca", rx, rz)
	return region.Open(filepath.Join(p.dir, filename))
}

// PlayerProvider читає останню позицію гравця з playerdata/<uuid>.dat
type PlayerProvider struct {
	dir string // директорія з файлами гравців
}

func NewPlayerProvider(dir string) PlayerProvider {
	return PlayerProvider{dir: dir}
}

// LastLocation повертає позицію, де гравець вийшов з гри.
// Файли гравців не знають імені світу, тому його передає викликач.
func (p PlayerProvider) LastLocation(id uuid.UUID, worldName string) (loc Location, errRet error) {
	f, err := os.Open(filepath.Join(p.dir, id.String()+".dat"))
	if err != nil {
		return Location{}, err
	}
	defer func(f *os.File) {
		err2 := f.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close player data fail: %w", err2)
		}
	}(f)

	r, err := gzip.NewReader(f)
	if err != nil {
		return Location{}, fmt.Errorf("open gzip reader fail: %w", err)
	}
	data, err := save.ReadPlayerData(r)
	if err != nil {
		return Location{}, fmt.Errorf("read player data fail: %w", err)
	}
	if err := r.Close(); err != nil {
		return Location{}, fmt.Errorf("close gzip reader fail: %w", err)
	}

	return Location{
		World:    worldName,
		Position: data.Pos,
		Rotation: data.Rotation,
	}, nil
}

// Open відкриває збережений світ з папки dir: читає level.dat і
// налаштовує провайдер чанків з region/
func Open(logger *zap.Logger, name, dir string, limiter *rate.Limiter) (*World, error) {
	lv, err := readLevel(filepath.Join(dir, "level.dat"))
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	config.SpawnAngle = lv.Data.SpawnAngle
	config.SpawnPosition = [3]int32{lv.Data.SpawnX, lv.Data.SpawnY, lv.Data.SpawnZ}

	logger.Debug("Open world",
		zap.String("dir", dir),
		zap.Int32s("spawn", config.SpawnPosition[:]))

	return New(logger, name, NewProvider(filepath.Join(dir, "region"), limiter), config), nil
}

func readLevel(path string) (lv save.Level, errRet error) {
	f, err := os.Open(path)
	if err != nil {
		return save.Level{}, err
	}
	defer func(f *os.File) {
		err2 := f.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close level.dat fail: %w", err2)
		}
	}(f)

	// level.dat зжатий через gzip
	r, err := gzip.NewReader(f)
	if err != nil {
		return save.Level{}, fmt.Errorf("open gzip reader fail: %w", err)
	}
	lv, err = save.ReadLevel(r)
	if err != nil {
		return save.Level{}, fmt.Errorf("read level.dat fail: %w", err)
	}
	return lv, nil
}
