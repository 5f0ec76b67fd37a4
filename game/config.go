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

// Йоу, чат! Зараз розберемо конфігурацію телепортів!
// Все читається з config.toml, невідомі ключі - помилка.

package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"FlowyWarp/destination"
	"FlowyWarp/portal"
	"FlowyWarp/safety"
)

// Config - головна структура з налаштуваннями
// Поля з тегом `toml` читаються з конфіг файлу
type Config struct {
	// Світи, з якими працюємо. Папка кожного - це збережений світ з level.dat
	Worlds []WorldConfig `toml:"worlds"`

	// Світ, у якому шукаємо офлайн гравців за UUID (playerdata лежить тільки в ньому)
	// Порожнє значення - перший світ зі списку
	DefaultWorld string `toml:"default-world"`

	// Файл з якорями, наприклад "anchors.yml"
	AnchorsFile string `toml:"anchors-file"`

	Teleport TeleportConfig `toml:"teleport"`
	Portals  PortalConfig   `toml:"portals"`

	// Права: нік гравця -> список прав. Ключ "*" - права для всіх.
	// Порожня таблиця - дозволено все (консоль)
	Permissions map[string][]string `toml:"permissions"`

	// ChunkLoadingLimiter - скільки чанків можна завантажити з диску за раз
	ChunkLoadingLimiter Limiter `toml:"chunk-loading-limiter"`
}

type WorldConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// TeleportConfig - як шукати безпечне місце
type TeleportConfig struct {
	// На скільки блоків вгору і вниз шукати
	Tolerance int `toml:"tolerance"`
	// Половина ширини квадрата пошуку по горизонталі
	Radius int `toml:"radius"`
	// На скільки блоків гравцю можна впасти до землі, 0 - земля одразу під ногами
	FallTolerance int `toml:"fall-tolerance"`
	// Що робити, якщо безпечного місця немає: "keep" або "reject"
	UnsafePolicy Policy `toml:"unsafe-policy"`
	// Префікс прав, наприклад "multiverse.teleport."
	PermissionPrefix string `toml:"permission-prefix"`
}

// PortalConfig - пошук порталів для виходу
type PortalConfig struct {
	// Які портали можна використовувати: none, all, nether, end
	Allow portal.Allowance `toml:"allow"`
	// Радіус пошуку порталу навколо гравця
	SearchRadius int `toml:"search-radius"`
}

// Policy - що робити з телепортом, коли пошук не знайшов безпечного місця
type Policy string

const (
	// PolicyKeep - телепортуємо у запитану точку як є
	PolicyKeep Policy = "keep"
	// PolicyReject - відмовляємо в телепорті
	PolicyReject Policy = "reject"
)

var errUnknownPolicy = errors.New("unknown unsafe policy")

func (p *Policy) UnmarshalText(text []byte) error {
	switch v := Policy(text); v {
	case PolicyKeep, PolicyReject:
		*p = v
		return nil
	}
	return fmt.Errorf("%w: %q", errUnknownPolicy, text)
}

// DefaultConfig - значення для всього, що не вказано в config.toml
func DefaultConfig() Config {
	return Config{
		AnchorsFile: "anchors.yml",
		Teleport: TeleportConfig{
			Tolerance:        safety.DefaultTolerance,
			Radius:           safety.DefaultRadius,
			UnsafePolicy:     PolicyKeep,
			PermissionPrefix: destination.DefaultPermissionPrefix,
		},
		Portals: PortalConfig{
			Allow:        portal.AllowAll,
			SearchRadius: 16,
		},
		ChunkLoadingLimiter: Limiter{Every: duration{time.Millisecond}, N: 256},
	}
}

var (
	errNoWorlds       = errors.New("no worlds configured")
	errDuplicateWorld = errors.New("duplicate world")
	errBadWorld       = errors.New("bad world entry")
	errNegative       = errors.New("value must not be negative")
)

// Validate перевіряє конфіг і повертає всі знайдені проблеми разом
func (c *Config) Validate() error {
	var errs error
	if len(c.Worlds) == 0 {
		errs = multierr.Append(errs, errNoWorlds)
	}
	seen := make(map[string]bool, len(c.Worlds))
	for i, w := range c.Worlds {
		if w.Name == "" || w.Path == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: worlds[%d] needs name and path", errBadWorld, i))
			continue
		}
		if seen[w.Name] {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", errDuplicateWorld, w.Name))
		}
		seen[w.Name] = true
	}
	if c.DefaultWorld != "" && len(c.Worlds) > 0 && !seen[c.DefaultWorld] {
		errs = multierr.Append(errs, fmt.Errorf("%w: default-world %q is not in worlds", errBadWorld, c.DefaultWorld))
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"teleport.tolerance", c.Teleport.Tolerance},
		{"teleport.radius", c.Teleport.Radius},
		{"teleport.fall-tolerance", c.Teleport.FallTolerance},
		{"portals.search-radius", c.Portals.SearchRadius},
	} {
		if f.value < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s = %d", errNegative, f.name, f.value))
		}
	}
	return errs
}

// defaultWorld - світ для офлайн гравців
func (c *Config) defaultWorld() WorldConfig {
	for _, w := range c.Worlds {
		if w.Name == c.DefaultWorld {
			return w
		}
	}
	if len(c.Worlds) > 0 {
		return c.Worlds[0]
	}
	return WorldConfig{}
}

// Limiter - структура для обмеження частоти дій
// Наприклад: не більше 100 чанків кожні 5 секунд
type Limiter struct {
	// Як часто можна виконувати дію
	// Наприклад "5s" = кожні 5 секунд
	Every duration `toml:"every"`

	// Скільки разів можна виконати дію за цей період
	N int
}

// Limiter перетворює наші налаштування в готовий rate.Limiter
func (l *Limiter) Limiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

// duration - обгортка навколо time.Duration
// Потрібна щоб читати тривалість з конфіг файлу
type duration struct {
	time.Duration
}

// UnmarshalText перетворює текст з конфігу в time.Duration
// Наприклад "5s" -> 5 секунд
func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}
