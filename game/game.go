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

package game

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"FlowyWarp/anchor"
	"FlowyWarp/destination"
	"FlowyWarp/portal"
	"FlowyWarp/safety"
	"FlowyWarp/world"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	errNoWorldOpened    = errors.New("no world could be opened")
)

// Game збирає все докупи: світи, гравців, якорі, пошук безпечного
// місця і реєстр призначень.
type Game struct {
	log *zap.Logger

	config Config
	perms  destination.PermissionChecker

	worlds    *world.Worlds
	players   *world.PlayerList
	anchors   *anchor.Store
	evaluator *safety.Evaluator
	portals   *portal.Locator
	registry  *destination.Registry
}

// NewGame відкриває світи і якорі з диску згідно з конфігом
func NewGame(logger *zap.Logger, config Config) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	worlds, err := openWorlds(logger, &config)
	if err != nil {
		return nil, err
	}

	anchors, err := anchor.Load(logger, config.AnchorsFile)
	if anchors == nil {
		return nil, err
	}
	// зламані якорі вже залоговані, решта працює

	g := New(logger, config, worlds, anchors)
	dw := config.defaultWorld()
	g.players.WithOffline(world.NewPlayerProvider(filepath.Join(dw.Path, "playerdata")), dw.Name)
	return g, nil
}

// Йоу, чат! Кожен світ - це папка з level.dat і region/.
// Світ, який не відкрився, пропускаємо, але якщо не відкрився жоден - це помилка.
func openWorlds(logger *zap.Logger, config *Config) (*world.Worlds, error) {
	worlds := world.NewWorlds()
	var errs error
	for _, wc := range config.Worlds {
		w, err := world.Open(logger.Named(wc.Name), wc.Name, wc.Path, config.ChunkLoadingLimiter.Limiter())
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("world %s: %w", wc.Name, err))
			continue
		}
		worlds.Add(w)
	}
	if errs != nil {
		logger.Warn("Some worlds failed to open", zap.Error(errs))
	}
	if len(worlds.Names()) == 0 {
		return nil, multierr.Append(errNoWorldOpened, errs)
	}
	return worlds, nil
}

// New будує гру з уже відкритих світів і якорів
func New(logger *zap.Logger, config Config, worlds *world.Worlds, anchors *anchor.Store) *Game {
	var perms destination.PermissionChecker = destination.AllowAll
	if len(config.Permissions) > 0 {
		perms = StaticPermissions(config.Permissions)
	}

	evaluator := safety.NewEvaluator(worlds,
		safety.WithLogger(logger),
		safety.WithFallTolerance(config.Teleport.FallTolerance))
	players := world.NewPlayerList()

	registry := destination.NewRegistry(logger, perms,
		destination.WithEvaluator(evaluator),
		destination.WithSearch(config.Teleport.Tolerance, config.Teleport.Radius),
		destination.WithPermissionPrefix(config.Teleport.PermissionPrefix))
	// порядок реєстрації - порядок підказок
	registry.Register(destination.NewWorldKind(worlds))
	registry.Register(destination.NewPlayerKind(players))
	registry.Register(destination.NewAnchorKind(anchors))
	registry.Register(destination.NewExactKind(worlds))
	registry.Register(destination.NewBedKind(players, evaluator))

	return &Game{
		log:       logger.Named("game"),
		config:    config,
		perms:     perms,
		worlds:    worlds,
		players:   players,
		anchors:   anchors,
		evaluator: evaluator,
		portals:   portal.NewLocator(worlds, evaluator),
		registry:  registry,
	}
}

func (g *Game) Worlds() *world.Worlds { return g.worlds }
func (g *Game) Players() *world.PlayerList { return g.players }
func (g *Game) Anchors() *anchor.Store { return g.anchors }
func (g *Game) Evaluator() *safety.Evaluator { return g.evaluator }
func (g *Game) Registry() *destination.Registry { return g.registry }

func (g *Game) Resolve(text string) (destination.Resolved, error) {
	return g.registry.Resolve(text)
}

func (g *Game) Suggest(issuer destination.Issuer, partial string) []string {
	return g.registry.Suggest(issuer, partial)
}

// Teleport - повний шлях команди телепорту: перевірка прав, розбір,
// пошук безпечного місця і політика для небезпечних точок.
// Сам телепорт робить хост з поверненою точкою.
func (g *Game) Teleport(issuer destination.Issuer, text string) (destination.Resolved, error) {
	id, _ := destination.Split(text)
	if _, ok := g.registry.Kind(id); !ok {
		return destination.Resolved{}, &destination.UnknownKindError{Kind: id}
	}
	self, _ := g.registry.PermissionNodes(id)
	if !g.perms.HasPermission(issuer, self) {
		return destination.Resolved{}, fmt.Errorf("%w: %s", ErrPermissionDenied, self)
	}

	logger := g.log.With(
		zap.String("issuer", issuer.Name()),
		zap.String("destination", text),
	)
	res, err := g.registry.Resolve(text)
	if err != nil {
		logger.Debug("Destination rejected", zap.Error(err))
		return destination.Resolved{}, err
	}
	if res.Unsafe {
		if g.config.Teleport.UnsafePolicy == PolicyReject {
			logger.Info("Teleport rejected, no safe location")
			return destination.Resolved{}, fmt.Errorf("%w: %s", destination.ErrNoSafeLocation, text)
		}
		logger.Warn("Teleport to unsafe location", zap.Stringer("location", res.Location))
	}
	logger.Info("Teleport", zap.Stringer("location", res.Location), zap.Bool("adjusted", res.Adjusted))
	return res, nil
}

// PortalExit - куди поставити гравця біля найближчого дозволеного порталу
func (g *Game) PortalExit(origin world.Location) (world.Location, portal.Type, error) {
	return g.portals.NearestAllowedPortal(origin,
		g.config.Portals.Allow,
		g.config.Teleport.Tolerance,
		g.config.Portals.SearchRadius)
}
