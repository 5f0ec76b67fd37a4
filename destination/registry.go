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

// Йоу, чат! Реєстр призначень - це те, що перетворює рядок типу
// "p:Steve" або просто "skylands" на точку в світі.
//
// Рядок ділиться по першому ':' на id виду і параметри. Якщо ':' немає,
// весь рядок - це назва світу (вид "w"), так люди звикли писати.
// Порядок видів - порядок реєстрації, від нього залежать підказки в консолі.

package destination

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"FlowyWarp/safety"
)

const (
	DefaultKind             = "w"
	DefaultPermissionPrefix = "multiverse.teleport."
)

type Registry struct {
	log   *zap.Logger
	perms PermissionChecker

	evaluator *safety.Evaluator
	tolerance int
	radius    int
	prefix    string

	lock  sync.RWMutex
	kinds []Kind
	index map[string]int
}

type Option func(*Registry)

// WithEvaluator вмикає пошук безпечного місця в Resolve
func WithEvaluator(e *safety.Evaluator) Option {
	return func(r *Registry) { r.evaluator = e }
}

// WithSearch задає вертикальний допуск і горизонтальний радіус пошуку
func WithSearch(tolerance, radius int) Option {
	return func(r *Registry) {
		r.tolerance = tolerance
		r.radius = radius
	}
}

func WithPermissionPrefix(prefix string) Option {
	return func(r *Registry) { r.prefix = prefix }
}

func NewRegistry(logger *zap.Logger, perms PermissionChecker, opts ...Option) *Registry {
	if perms == nil {
		perms = AllowAll
	}
	r := &Registry{
		log:       logger.Named("destination"),
		perms:     perms,
		tolerance: safety.DefaultTolerance,
		radius:    safety.DefaultRadius,
		prefix:    DefaultPermissionPrefix,
		index:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register додає вид. Повторна реєстрація того самого id замінює
// старий вид, але зберігає його місце в порядку.
func (r *Registry) Register(k Kind) {
	id := k.Identifier()
	r.lock.Lock()
	defer r.lock.Unlock()
	if i, ok := r.index[id]; ok {
		r.log.Warn("Destination kind overwritten", zap.String("id", id))
		r.kinds[i] = k
		return
	}
	r.index[id] = len(r.kinds)
	r.kinds = append(r.kinds, k)
}

func (r *Registry) Kind(id string) (Kind, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.kinds[i], true
}

// Kinds - копія списку видів у порядку реєстрації
func (r *Registry) Kinds() []Kind {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]Kind(nil), r.kinds...)
}

// PermissionNodes - права на телепорт себе і інших до виду id
func (r *Registry) PermissionNodes(id string) (self, other string) {
	return r.prefix + "self." + id, r.prefix + "other." + id
}

// CanUse - чи має issuer хоча б одне з прав на вид id
func (r *Registry) CanUse(issuer Issuer, id string) bool {
	self, other := r.PermissionNodes(id)
	return r.perms.HasPermission(issuer, self) || r.perms.HasPermission(issuer, other)
}

// Split ділить рядок на id виду і параметри. Без ':' - це вид за замовчуванням.
func Split(text string) (id, params string) {
	id, params, ok := strings.Cut(text, Separator)
	if !ok {
		return DefaultKind, text
	}
	return id, params
}

// Parse знаходить вид і передає йому параметри
func (r *Registry) Parse(text string) (Target, error) {
	id, params := Split(text)
	k, ok := r.Kind(id)
	if !ok {
		return Target{}, &UnknownKindError{Kind: id}
	}
	t, err := k.Parse(params)
	if err != nil {
		if errors.Is(err, ErrPreconditionFailed) {
			return Target{}, err
		}
		return Target{}, &InvalidParamsError{Kind: id, Detail: err.Error(), Err: err}
	}
	t.Kind = id
	return t, nil
}

// Resolve розбирає рядок і, якщо точка не гарантовано безпечна,
// шукає найближче безпечне місце. Якщо не знайшли - це не помилка,
// повертаємо точку як є з Unsafe = true.
func (r *Registry) Resolve(text string) (Resolved, error) {
	t, err := r.Parse(text)
	if err != nil {
		return Resolved{}, err
	}
	res := Resolved{Kind: t.Kind, Location: t.Location}
	if t.KnownSafe || r.evaluator == nil {
		return res, nil
	}

	found, ok := r.evaluator.FindNearestSafe(t.Location, r.tolerance, r.radius)
	if !ok {
		r.log.Debug("No safe location for destination",
			zap.String("destination", text),
			zap.Stringer("location", t.Location))
		res.Unsafe = true
		return res, nil
	}
	res.Adjusted = found != t.Location
	res.Location = found
	return res, nil
}

// Suggest - підказки для автодоповнення з префіксом "id:".
// Види без прав пропускаються. Якщо в partial є ':', підказує лише
// названий вид, і йому передається текст після ':'.
func (r *Registry) Suggest(issuer Issuer, partial string) []string {
	id, params, named := strings.Cut(partial, Separator)
	var suggestions []string
	for _, k := range r.Kinds() {
		kid := k.Identifier()
		if named && kid != id {
			continue
		}
		if !r.CanUse(issuer, kid) {
			continue
		}
		p := ""
		if named {
			p = params
		}
		for _, s := range k.Suggest(p) {
			suggestions = append(suggestions, kid+Separator+s)
		}
	}
	return suggestions
}
