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

// Йоу, чат! Це один вимір (світ), який читає блоки з чанків go-mc.
// Чанки підвантажуються ліниво при першому запиті блоку, тому
// пошук безпечного місця сам підтягує потрібні колонки з диску.

package world

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/level/block"
)

// ChunkSource - звідки брати чанки. ChunkProvider читає їх з region файлів.
type ChunkSource interface {
	GetChunk(pos [2]int32) (*level.Chunk, error)
}

// World - один світ з іменем, межами висоти і точкою спавну
type World struct {
	log           *zap.Logger // логер для відлагодження
	name          string
	config        Config      // конфігурація світу
	chunkProvider ChunkSource // провайдер для завантаження чанків

	chunksLock sync.RWMutex
	chunks     map[[2]int32]*LoadedChunk // завантажені чанки
}

// Config - налаштування світу
type Config struct {
	MinY          int32    // найнижчий блок, для 1.18+ це -64
	Sections      int      // кількість секцій 16x16x16 по висоті
	SpawnAngle    float32  // кут повороту при спавні
	SpawnPosition [3]int32 // координати точки спавну
}

// DefaultConfig - розміри overworld у 1.18+: від -64 до 319
func DefaultConfig() Config {
	return Config{MinY: -64, Sections: 24}
}

var errOutOfWorld = errors.New("position is out of world")

func New(logger *zap.Logger, name string, provider ChunkSource, config Config) *World {
	if config.Sections <= 0 {
		config.Sections = DefaultConfig().Sections
	}
	return &World{
		log:           logger,
		name:          name,
		config:        config,
		chunkProvider: provider,
		chunks:        make(map[[2]int32]*LoadedChunk),
	}
}

func (w *World) Name() string { return w.name }

// Spawn повертає точку спавну світу, по центру блоку
func (w *World) Spawn() Location {
	sp := w.config.SpawnPosition
	return Location{
		World:    w.name,
		Position: Position{float64(sp[0]) + 0.5, float64(sp[1]), float64(sp[2]) + 0.5},
		Rotation: Rotation{w.config.SpawnAngle, 0},
	}
}

func (w *World) HeightRange() (minY, maxY int) {
	minY = int(w.config.MinY)
	return minY, minY + w.config.Sections*16 - 1
}

// BlockAt читає блок. Все що поза світом або в незавантаженому чанку - повітря.
func (w *World) BlockAt(pos BlockPos) Block {
	sec, idx, err := w.locate(pos)
	if err != nil {
		return Air
	}
	lc := w.chunk([2]int32{int32(pos[0] >> 4), int32(pos[2] >> 4)})
	if lc == nil {
		return Air
	}

	lc.Lock()
	if sec >= len(lc.Sections) {
		lc.Unlock()
		return Air
	}
	state := lc.Sections[sec].GetBlock(idx)
	lc.Unlock()

	if int(state) < 0 || int(state) >= len(block.StateList) {
		return Air
	}
	return Classify(block.StateList[state])
}

// SetBlock змінює блок у завантаженому (або новому порожньому) чанку.
// Ядро пошуку ніколи цього не викликає, це для хоста і тестів.
func (w *World) SetBlock(pos BlockPos, b block.Block) error {
	sec, idx, err := w.locate(pos)
	if err != nil {
		return err
	}
	state, ok := block.ToStateID[b]
	if !ok {
		return fmt.Errorf("unknown block state %q", b.ID())
	}
	cpos := [2]int32{int32(pos[0] >> 4), int32(pos[2] >> 4)}

	lc := w.chunk(cpos)
	if lc == nil {
		lc = w.AddChunk(cpos, level.EmptyChunk(w.config.Sections))
	}
	lc.Lock()
	defer lc.Unlock()
	lc.Sections[sec].SetBlock(idx, state)
	return nil
}

// AddChunk кладе готовий чанк у світ (замінює існуючий)
func (w *World) AddChunk(pos [2]int32, c *level.Chunk) *LoadedChunk {
	lc := &LoadedChunk{Chunk: c}
	w.chunksLock.Lock()
	w.chunks[pos] = lc
	w.chunksLock.Unlock()
	return lc
}

// UnloadChunk забуває чанк, наступний запит знову прочитає його з провайдера
func (w *World) UnloadChunk(pos [2]int32) {
	w.chunksLock.Lock()
	delete(w.chunks, pos)
	w.chunksLock.Unlock()
}

// locate повертає номер секції та індекс блоку всередині неї
func (w *World) locate(pos BlockPos) (sec, idx int, err error) {
	minY, maxY := w.HeightRange()
	if pos[1] < minY || pos[1] > maxY {
		return 0, 0, errOutOfWorld
	}
	sec = (pos[1] - minY) >> 4
	// індекс у секції: y*256 + z*16 + x
	idx = (pos[1]&15)<<8 | (pos[2]&15)<<4 | pos[0]&15
	return sec, idx, nil
}

func (w *World) chunk(pos [2]int32) *LoadedChunk {
	w.chunksLock.RLock()
	lc, ok := w.chunks[pos]
	w.chunksLock.RUnlock()
	if ok {
		return lc
	}
	if w.chunkProvider == nil {
		return nil
	}
	return w.loadChunk(pos)
}

func (w *World) loadChunk(pos [2]int32) *LoadedChunk {
	// Створюємо логер з координатами чанку для зручного дебагу
	logger := w.log.With(zap.Int32("x", pos[0]), zap.Int32("z", pos[1]))

	c, err := w.chunkProvider.GetChunk(pos)
	if err != nil {
		switch {
		case errors.Is(err, errChunkNotExist):
			// чанк ще не згенерований - для пошуку це порожнеча
			logger.Debug("Chunk not exist")
		case errors.Is(err, ErrReachRateLimit):
			// не кешуємо, спробуємо пізніше
			logger.Debug("Chunk loading rate limited")
		default:
			logger.Error("GetChunk error", zap.Error(err))
		}
		return nil
	}
	if c == nil {
		logger.Error("Chunk is nil after loading")
		return nil
	}

	logger.Debug("Loaded chunk",
		zap.Int("sections", len(c.Sections)),
		zap.String("status", string(c.Status)))

	w.chunksLock.Lock()
	defer w.chunksLock.Unlock()
	// поки ми читали диск, хтось міг вже покласти чанк
	if lc, ok := w.chunks[pos]; ok {
		return lc
	}
	lc := &LoadedChunk{Chunk: c}
	w.chunks[pos] = lc
	return lc
}

// LoadedChunk - чанк з м'ютексом, бо хост може змінювати блоки паралельно з пошуком
type LoadedChunk struct {
	sync.Mutex
	*level.Chunk
}
