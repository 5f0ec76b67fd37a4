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

package destination

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"FlowyWarp/safety"
	"FlowyWarp/world"
	"FlowyWarp/world/worldtest"
)

const sky = "skylands"

type issuer string

func (i issuer) Name() string { return string(i) }

type fakeWorlds map[string]world.Location

func (f fakeWorlds) Spawn(name string) (world.Location, bool) {
	loc, ok := f[name]
	return loc, ok
}

func (f fakeWorlds) Names() []string {
	names := maps.Keys(f)
	slices.Sort(names)
	return names
}

type fakeAnchors map[string]world.Location

func (f fakeAnchors) Get(name string) (world.Location, bool) {
	loc, ok := f[name]
	return loc, ok
}

func (f fakeAnchors) Names() []string {
	names := maps.Keys(f)
	slices.Sort(names)
	return names
}

// echo - вид, який повертає свій id і параметри як назву світу
type echo string

func (e echo) Identifier() string { return string(e) }

func (e echo) Parse(params string) (Target, error) {
	return Target{Location: world.At(string(e)+"/"+params, 0, 0, 0), KnownSafe: true}, nil
}

func (e echo) Suggest(string) []string { return []string{"x"} }

// skylands - один камінь на (0,64,0), спавн на (0,100,0)
func skylands() (*worldtest.Grid, fakeWorlds) {
	g := worldtest.NewGrid().
		AddWorld(sky, -64, 319).
		AddWorld("nether", 0, 127).
		Set(sky, world.BlockPos{0, 64, 0}, "stone")
	worlds := fakeWorlds{
		sky:      world.At(sky, 0, 100, 0),
		"nether": world.At("nether", 0, 64, 0),
	}
	return g, worlds
}

func TestRegistry_Routing(t *testing.T) {
	r := NewRegistry(zap.NewNop(), nil)
	ids := []string{"w", "p", "a", "e", "xyz"}
	for _, id := range ids {
		r.Register(echo(id))
	}
	for _, id := range ids {
		res, err := r.Resolve(id + ":arg:with:colons")
		if err != nil {
			t.Fatalf("Resolve(%s:...) error: %v", id, err)
		}
		if res.Kind != id || res.Location.World != id+"/arg:with:colons" {
			t.Errorf("Resolve(%s:...) = %+v", id, res)
		}
	}
}

func TestRegistry_DefaultKind(t *testing.T) {
	r := NewRegistry(zap.NewNop(), nil)
	r.Register(echo("w"))
	r.Register(echo("p"))

	bare, err := r.Resolve("skylands")
	if err != nil {
		t.Fatal(err)
	}
	explicit, err := r.Resolve("w:skylands")
	if err != nil {
		t.Fatal(err)
	}
	if bare != explicit {
		t.Errorf("bare %+v != explicit %+v", bare, explicit)
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	r := NewRegistry(zap.NewNop(), nil)
	r.Register(echo("w"))

	_, err := r.Resolve("zz:abc")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("error = %v, want ErrUnknownKind", err)
	}
	var unknown *UnknownKindError
	if !errors.As(err, &unknown) || unknown.Kind != "zz" {
		t.Errorf("error = %#v", err)
	}

	// без виду "w" навіть голе ім'я не розібрати
	if _, err := NewRegistry(zap.NewNop(), nil).Resolve("skylands"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("empty registry error = %v", err)
	}
}

func TestRegistry_UnknownPlayer(t *testing.T) {
	r := NewRegistry(zap.NewNop(), nil)
	r.Register(NewPlayerKind(world.NewPlayerList()))

	_, err := r.Resolve("p:Steve")
	if errors.Is(err, ErrUnknownKind) {
		t.Fatal("unknown player must not be reported as unknown kind")
	}
	var invalid *InvalidParamsError
	if !errors.As(err, &invalid) || invalid.Kind != "p" {
		t.Fatalf("error = %v, want InvalidParams(p)", err)
	}
	if !errors.Is(err, ErrInvalidParams) || !errors.Is(err, world.ErrPlayerNotFound) {
		t.Errorf("error chain is broken: %v", err)
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := NewRegistry(zap.New(core), nil)

	first := echo("w")
	r.Register(first)
	r.Register(echo("p"))
	r.Register(NewWorldKind(fakeWorlds{}))

	kinds := r.Kinds()
	if len(kinds) != 2 || kinds[0].Identifier() != "w" || kinds[1].Identifier() != "p" {
		t.Fatalf("Kinds() = %v", kinds)
	}
	if k, _ := r.Kind("w"); k == Kind(first) {
		t.Error("last registration should win")
	}
	if logs.FilterMessage("Destination kind overwritten").Len() != 1 {
		t.Errorf("overwrite was not logged: %v", logs.All())
	}
}

func TestRegistry_Suggest(t *testing.T) {
	_, worlds := skylands()
	players := world.NewPlayerList()
	players.Join(world.Player{Name: "Alex", UUID: uuid.New()})
	anchors := fakeAnchors{"home": world.At(sky, 0, 65, 0)}

	r := NewRegistry(zap.NewNop(), nil)
	r.Register(NewWorldKind(worlds))
	r.Register(NewPlayerKind(players))
	r.Register(NewAnchorKind(anchors))

	want := []string{"w:nether", "w:skylands", "p:Alex", "a:home"}
	if got := r.Suggest(issuer("op"), ""); !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(\"\") = %v, want %v", got, want)
	}
	if got := r.Suggest(issuer("op"), "p:al"); !reflect.DeepEqual(got, []string{"p:Alex"}) {
		t.Errorf("Suggest(p:al) = %v", got)
	}
	if got := r.Suggest(issuer("op"), "w:sky"); !reflect.DeepEqual(got, []string{"w:skylands"}) {
		t.Errorf("Suggest(w:sky) = %v", got)
	}
	if got := r.Suggest(issuer("op"), "zz:"); len(got) != 0 {
		t.Errorf("Suggest(zz:) = %v", got)
	}

	// без прав на "p", а на "a" лише other
	perms := PermissionFunc(func(_ Issuer, node string) bool {
		return node == "multiverse.teleport.self.w" || node == "multiverse.teleport.other.a"
	})
	r = NewRegistry(zap.NewNop(), perms)
	r.Register(NewWorldKind(worlds))
	r.Register(NewPlayerKind(players))
	r.Register(NewAnchorKind(anchors))
	want = []string{"w:nether", "w:skylands", "a:home"}
	if got := r.Suggest(issuer("guest"), ""); !reflect.DeepEqual(got, want) {
		t.Errorf("filtered Suggest = %v, want %v", got, want)
	}
}

func TestRegistry_PermissionNodes(t *testing.T) {
	r := NewRegistry(zap.NewNop(), nil, WithPermissionPrefix("flowy.tp."))
	self, other := r.PermissionNodes("w")
	if self != "flowy.tp.self.w" || other != "flowy.tp.other.w" {
		t.Errorf("PermissionNodes = %q, %q", self, other)
	}
}

func TestResolve_Skylands(t *testing.T) {
	g, worlds := skylands()
	r := NewRegistry(zap.NewNop(), nil,
		WithEvaluator(safety.NewEvaluator(g)),
		WithSearch(40, 0))
	r.Register(NewWorldKind(worlds))

	for _, text := range []string{"w:skylands", "skylands"} {
		res, err := r.Resolve(text)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", text, err)
		}
		if want := world.At(sky, 0, 65, 0); res.Location != want {
			t.Errorf("Resolve(%q) = %v, want %v", text, res.Location, want)
		}
		if !res.Adjusted || res.Unsafe {
			t.Errorf("Resolve(%q) flags = %+v", text, res)
		}
	}

	if _, err := r.Resolve("w:aether"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("unknown world error = %v", err)
	}
}

func TestResolve_UnsafeKeepsLocation(t *testing.T) {
	g, _ := skylands()
	void := world.At(sky, 50, 100, 50)
	r := NewRegistry(zap.NewNop(), nil,
		WithEvaluator(safety.NewEvaluator(g)),
		WithSearch(4, 2))
	r.Register(NewAnchorKind(fakeAnchors{"void": void}))

	res, err := r.Resolve("a:void")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Unsafe || res.Adjusted || res.Location != void {
		t.Errorf("Resolve(a:void) = %+v", res)
	}
	if _, err := r.Resolve("a:nope"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("unknown anchor error = %v", err)
	}
}

func TestExactKind(t *testing.T) {
	g, worlds := skylands()
	r := NewRegistry(zap.NewNop(), nil, WithEvaluator(safety.NewEvaluator(g)))
	r.Register(NewExactKind(worlds))

	res, err := r.Resolve("e:skylands:1.5,70,2.5:10:90")
	if err != nil {
		t.Fatal(err)
	}
	want := world.Location{World: sky, Position: world.Position{1.5, 70, 2.5}, Rotation: world.Rotation{90, 10}}
	if res.Location != want || res.Adjusted || res.Unsafe {
		t.Errorf("exact location must not be adjusted: %+v", res)
	}

	for _, bad := range []string{"e:nowhere:0,0,0", "e:skylands:1,2", "e:skylands", "e:skylands:1,2,3:5"} {
		if _, err := r.Resolve(bad); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("Resolve(%q) error = %v, want ErrInvalidParams", bad, err)
		}
	}
	if got := r.Suggest(issuer("op"), "e:sk"); !reflect.DeepEqual(got, []string{"e:skylands:"}) {
		t.Errorf("Suggest(e:sk) = %v", got)
	}
}

func TestPlayerKind(t *testing.T) {
	players := world.NewPlayerList()
	alex := world.Player{Name: "Alex", UUID: uuid.New(), Location: world.At(sky, 3, 200, 3)}
	players.Join(alex)

	g, _ := skylands()
	r := NewRegistry(zap.NewNop(), nil, WithEvaluator(safety.NewEvaluator(g)))
	r.Register(NewPlayerKind(players))

	for _, text := range []string{"p:Alex", "p:alex", "p:" + alex.UUID.String()} {
		res, err := r.Resolve(text)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", text, err)
		}
		if res.Location != alex.Location || res.Adjusted || res.Unsafe {
			t.Errorf("Resolve(%q) = %+v", text, res)
		}
	}
	if _, err := r.Resolve("p:"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("empty player error = %v", err)
	}
}

func TestBedKind(t *testing.T) {
	g := worldtest.NewGrid().
		AddWorld(sky, -64, 319).
		Fill(sky, world.BlockPos{-3, 63, -3}, world.BlockPos{3, 63, 3}, "stone").
		Set(sky, world.BlockPos{0, 64, 0}, "red_bed").
		Set(sky, world.BlockPos{1, 64, 0}, "red_bed")
	bed := world.At(sky, 0, 64, 0)

	players := world.NewPlayerList()
	alex := world.Player{Name: "Alex", UUID: uuid.New(), Location: world.At(sky, 0, 64, 3)}
	steve := world.Player{Name: "Steve", UUID: uuid.New()}
	players.Join(alex)
	players.Join(steve)
	players.SetBed(alex.UUID, bed)

	e := safety.NewEvaluator(g)
	r := NewRegistry(zap.NewNop(), nil, WithEvaluator(e))
	r.Register(NewBedKind(players, e))

	res, err := r.Resolve("b:Alex")
	if err != nil {
		t.Fatal(err)
	}
	if want := world.At(sky, 0.5, 64, 1.5); res.Location != want || res.Adjusted {
		t.Errorf("Resolve(b:Alex) = %+v, want %v", res, want)
	}

	if _, err := r.Resolve("b:Steve"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("player without bed error = %v", err)
	}

	// обидва боки зайняті - звичайний пошук ставить на ліжко
	g.Set(sky, world.BlockPos{0, 64, 1}, "stone").Set(sky, world.BlockPos{0, 64, -1}, "stone")
	res, err = r.Resolve("b:Alex")
	if err != nil {
		t.Fatal(err)
	}
	if want := world.At(sky, 0, 65, 0); res.Location != want || !res.Adjusted {
		t.Errorf("blocked bed: %+v, want %v", res, want)
	}

	g.Set(sky, world.BlockPos{0, 64, 0}, "air")
	_, err = r.Resolve("b:Alex")
	if !errors.Is(err, ErrPreconditionFailed) || !errors.Is(err, safety.ErrNotABed) {
		t.Errorf("broken bed error = %v, want PreconditionFailed", err)
	}
	if errors.Is(err, ErrInvalidParams) {
		t.Error("broken bed must not be reported as invalid params")
	}
}
