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

package safety

import (
	"errors"
	"math/rand"
	"testing"

	"FlowyWarp/world"
	"FlowyWarp/world/worldtest"
)

const sky = "skylands"

// skylands - острів з одного блоку каменю на (0,64,0), під ним порожнеча
func skylands() *worldtest.Grid {
	return worldtest.NewGrid().
		AddWorld(sky, -64, 319).
		Set(sky, world.BlockPos{0, 64, 0}, "stone")
}

func empty() *worldtest.Grid {
	return worldtest.NewGrid().AddWorld(sky, -64, 319)
}

// floor - кам'яна підлога на висоті y навколо (0, 0)
func floor(g *worldtest.Grid, y, r int) *worldtest.Grid {
	return g.Fill(sky, world.BlockPos{-r, y, -r}, world.BlockPos{r, y, r}, "stone")
}

func TestIsSafe_Ground(t *testing.T) {
	g := floor(empty(), 63, 2)
	e := NewEvaluator(g)

	if !e.IsSafe(world.At(sky, 0.5, 64, 0.5)) {
		t.Error("standing on stone should be safe")
	}
	if e.IsSafe(world.At(sky, 0, 63, 0)) {
		t.Error("standing inside stone should not be safe")
	}
	if e.IsSafe(world.At(sky, 0, 66, 0)) {
		t.Error("standing in the air should not be safe")
	}
	if e.IsSafe(world.At(sky, 10, 64, 10)) {
		t.Error("void below should not be safe")
	}
	if e.IsSafe(world.At("nowhere", 0, 64, 0)) {
		t.Error("unknown world should not be safe")
	}
	if e.IsSafe(world.At(sky, 0, 319, 0)) {
		t.Error("head above the world should not be safe")
	}
}

func TestIsSafe_Hazards(t *testing.T) {
	hazards := []string{
		"lava", "fire", "soul_fire",
		"magma_block", "campfire", "soul_campfire",
		"cactus", "sweet_berry_bush", "wither_rose", "powder_snow",
	}
	grounds := []string{"stone", "air", "lava", "water"}
	for _, hazard := range hazards {
		for _, ground := range grounds {
			for _, part := range []int{0, 1} { // 0 - ноги, 1 - голова
				g := worldtest.NewGrid().AddWorld(sky, -64, 319).
					Set(sky, world.BlockPos{0, 63, 0}, ground).
					Set(sky, world.BlockPos{0, 64 + part, 0}, hazard)
				if NewEvaluator(g, WithFallTolerance(3)).IsSafe(world.At(sky, 0, 64, 0)) {
					t.Errorf("%s at offset %d over %s should not be safe", hazard, part, ground)
				}
			}
		}
	}
}

func TestIsSafe_HazardousGround(t *testing.T) {
	for _, ground := range []string{"magma_block", "campfire", "lava"} {
		g := empty().Set(sky, world.BlockPos{0, 63, 0}, ground)
		if NewEvaluator(g).IsSafe(world.At(sky, 0, 64, 0)) {
			t.Errorf("standing on %s should not be safe", ground)
		}
	}
}

func TestIsSafe_Suffocation(t *testing.T) {
	g := floor(empty(), 63, 1).Set(sky, world.BlockPos{0, 65, 0}, "stone")
	if NewEvaluator(g).IsSafe(world.At(sky, 0, 64, 0)) {
		t.Error("solid block at head level should not be safe")
	}
	g.Set(sky, world.BlockPos{0, 65, 0}, "torch")
	if !NewEvaluator(g).IsSafe(world.At(sky, 0, 64, 0)) {
		t.Error("passable block at head level should be safe")
	}
}

func TestIsSafe_FallTolerance(t *testing.T) {
	g := skylands()
	above := world.At(sky, 0, 67, 0) // два блоки повітря між ногами і каменем

	if NewEvaluator(g).IsSafe(above) {
		t.Error("without fall tolerance the air gap is void")
	}
	if NewEvaluator(g, WithFallTolerance(1)).IsSafe(above) {
		t.Error("tolerance 1 is not enough for a 2 block gap")
	}
	if !NewEvaluator(g, WithFallTolerance(2)).IsSafe(above) {
		t.Error("tolerance 2 should allow the fall")
	}

	g.Set(sky, world.BlockPos{0, 65, 0}, "lava")
	if NewEvaluator(g, WithFallTolerance(2)).IsSafe(above) {
		t.Error("falling into lava should not be safe")
	}
}

func TestFindNearestSafe_Skylands(t *testing.T) {
	e := NewEvaluator(skylands())
	got, ok := e.FindNearestSafe(world.At(sky, 0, 100, 0), 40, 0)
	if !ok {
		t.Fatal("safe location not found")
	}
	if want := world.At(sky, 0, 65, 0); got != want {
		t.Errorf("FindNearestSafe = %v, want %v", got, want)
	}
	if _, ok := e.FindNearestSafe(world.At(sky, 0, 100, 0), 34, 0); ok {
		t.Error("the island is 35 blocks down and must be out of reach for tolerance 34")
	}
}

func TestFindNearestSafe_SafeOriginUnchanged(t *testing.T) {
	g := floor(empty(), 63, 3)
	origin := world.Location{World: sky, Position: world.Position{1.25, 64.5, -0.75}, Rotation: world.Rotation{45, 10}}
	got, ok := NewEvaluator(g).FindNearestSafe(origin, 4, 10)
	if !ok || got != origin {
		t.Errorf("FindNearestSafe = %v, %v; want origin %v", got, ok, origin)
	}
}

func TestFindNearestSafe_UpBeforeDown(t *testing.T) {
	g := empty().
		Set(sky, world.BlockPos{5, 63, 5}, "stone"). // стоїмо на 64
		Set(sky, world.BlockPos{5, 59, 5}, "stone")  // стоїмо на 60
	got, ok := NewEvaluator(g).FindNearestSafe(world.At(sky, 5, 62, 5), 2, 0)
	if !ok {
		t.Fatal("safe location not found")
	}
	if got.Position[1] != 64 {
		t.Errorf("found y = %v, want 64 (upward wins the tie)", got.Position[1])
	}
}

func TestFindNearestSafe_RingBeforeHeight(t *testing.T) {
	g := empty().
		Set(sky, world.BlockPos{11, 63, 10}, "stone"). // кільце 1, але на 3 блоки вище
		Set(sky, world.BlockPos{12, 60, 10}, "stone")  // кільце 2, на тій самій висоті
	got, ok := NewEvaluator(g).FindNearestSafe(world.At(sky, 10, 61, 10), 4, 3)
	if !ok {
		t.Fatal("safe location not found")
	}
	if want := world.At(sky, 11, 64, 10); got != want {
		t.Errorf("FindNearestSafe = %v, want %v", got, want)
	}
}

func TestFindNearestSafe_RowMajorTieBreak(t *testing.T) {
	g := empty().
		Set(sky, world.BlockPos{1, 63, 0}, "stone"). // (dx=1, dz=0)
		Set(sky, world.BlockPos{0, 63, -1}, "stone") // (dx=0, dz=-1) - раніше у кільці
	got, ok := NewEvaluator(g).FindNearestSafe(world.At(sky, 0.5, 64, 0.5), 0, 1)
	if !ok {
		t.Fatal("safe location not found")
	}
	if want := world.At(sky, 0.5, 64, -0.5); got != want {
		t.Errorf("FindNearestSafe = %v, want %v", got, want)
	}
}

func TestFindNearestSafe_NotFound(t *testing.T) {
	g := skylands()
	origin := world.At(sky, 100, 100, 100)
	got, ok := NewEvaluator(g).FindNearestSafe(origin, 4, 3)
	if ok {
		t.Fatalf("found %v in the void", got)
	}
	if got != origin {
		t.Errorf("not found should return origin, got %v", got)
	}
	// (2*3+1)^2 колонок * 9 висот, кожна перевірка - щонайменше один запит
	if q := g.Queries(); q > 7*7*9*4 {
		t.Errorf("too many block queries: %d", q)
	}
}

func TestFindNearestSafe_RandomWorld(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	ids := []string{"air", "air", "air", "stone", "stone", "lava", "fire", "water", "rail"}
	g := worldtest.NewGrid().AddWorld(sky, 0, 31)
	for x := -10; x <= 10; x++ {
		for y := 0; y <= 31; y++ {
			for z := -10; z <= 10; z++ {
				g.Set(sky, world.BlockPos{x, y, z}, ids[r.Intn(len(ids))])
			}
		}
	}
	e := NewEvaluator(g)

	for i := 0; i < 200; i++ {
		origin := world.At(sky, float64(r.Intn(21)-10)+0.3, float64(r.Intn(32)), float64(r.Intn(21)-10)+0.7)
		tol, rad := r.Intn(5), r.Intn(6)
		got, ok := e.FindNearestSafe(origin, tol, rad)
		if !ok {
			continue
		}
		if !e.IsSafe(got) {
			t.Fatalf("FindNearestSafe(%v, %d, %d) returned unsafe %v", origin, tol, rad, got)
		}
		again, ok2 := e.FindNearestSafe(origin, tol, rad)
		if !ok2 || again != got {
			t.Fatalf("search is not deterministic: %v then %v", got, again)
		}
	}
}

// flipping - світ, який змінюється між запитами
type flipping struct {
	*worldtest.Grid
	n int
}

func (f *flipping) BlockAt(name string, pos world.BlockPos) world.Block {
	f.n++
	if f.n%3 == 0 {
		return world.ClassifyName("stone")
	}
	return f.Grid.BlockAt(name, pos)
}

func TestFindNearestSafe_MutatingWorld(t *testing.T) {
	f := &flipping{Grid: floor(empty(), 63, 4)}
	// головне - пошук не падає і завершується
	NewEvaluator(f).FindNearestSafe(world.At(sky, 0, 70, 0), 8, 4)
}

func TestIsSafeForVehicle(t *testing.T) {
	g := floor(empty(), 63, 2).Set(sky, world.BlockPos{0, 64, 0}, "rail")
	e := NewEvaluator(g)

	if !e.IsSafeForVehicle(world.At(sky, 0.5, 64, 0.5)) {
		t.Error("cart on rail should be safe")
	}
	if e.IsSafeForVehicle(world.At(sky, 1.5, 64, 0.5)) {
		t.Error("cart without rail should not be safe")
	}
	g.Set(sky, world.BlockPos{0, 65, 0}, "lava")
	if e.IsSafeForVehicle(world.At(sky, 0.5, 64, 0.5)) {
		t.Error("cart under lava should not be safe")
	}
}

func TestNearestSurface(t *testing.T) {
	g := skylands().Set(sky, world.BlockPos{0, -64, 0}, "bedrock")
	e := NewEvaluator(g)

	top, err := e.NearestSurfaceAbove(world.At(sky, 0.5, 10, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if want := world.At(sky, 0.5, 65, 0.5); top != want {
		t.Errorf("NearestSurfaceAbove = %v, want %v", top, want)
	}

	bottom, err := e.NearestSurfaceBelow(world.At(sky, 0.5, 10, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if want := world.At(sky, 0.5, -63, 0.5); bottom != want {
		t.Errorf("NearestSurfaceBelow = %v, want %v", bottom, want)
	}

	if _, err := e.NearestSurfaceAbove(world.At(sky, 7, 10, 7)); !errors.Is(err, ErrNoSurface) {
		t.Errorf("empty column error = %v, want ErrNoSurface", err)
	}
	if _, err := e.NearestSurfaceBelow(world.At("nowhere", 0, 0, 0)); !errors.Is(err, ErrUnknownWorld) {
		t.Errorf("unknown world error = %v, want ErrUnknownWorld", err)
	}

	// блок на стелі: точка над ним вже поза світом
	g.Set(sky, world.BlockPos{3, 319, 3}, "stone")
	if _, err := e.NearestSurfaceAbove(world.At(sky, 3, 10, 3)); !errors.Is(err, ErrNoSurface) {
		t.Errorf("ceiling block above: error = %v, want ErrNoSurface", err)
	}
	if _, err := e.NearestSurfaceBelow(world.At(sky, 3, 10, 3)); !errors.Is(err, ErrNoSurface) {
		t.Errorf("ceiling block below: error = %v, want ErrNoSurface", err)
	}
}

func TestSafeBedSpawn(t *testing.T) {
	newBed := func() *worldtest.Grid {
		return floor(empty(), 63, 3).
			Set(sky, world.BlockPos{0, 64, 0}, "red_bed"). // голова
			Set(sky, world.BlockPos{1, 64, 0}, "red_bed")  // ноги, вісь X
	}
	head := world.At(sky, 0, 64, 0)

	got, err := NewEvaluator(newBed()).SafeBedSpawn(head)
	if err != nil {
		t.Fatal(err)
	}
	if want := world.At(sky, 0.5, 64, 1.5); got != want {
		t.Errorf("SafeBedSpawn = %v, want %v", got, want)
	}

	blocked := newBed().Set(sky, world.BlockPos{0, 64, 1}, "stone")
	got, err = NewEvaluator(blocked).SafeBedSpawn(head)
	if err != nil {
		t.Fatal(err)
	}
	if want := world.At(sky, 0.5, 64, -0.5); got != want {
		t.Errorf("SafeBedSpawn with blocked side = %v, want %v", got, want)
	}

	blocked.Set(sky, world.BlockPos{0, 65, -1}, "lava")
	if _, err := NewEvaluator(blocked).SafeBedSpawn(head); !errors.Is(err, ErrNoSafeLocation) {
		t.Errorf("both sides blocked error = %v, want ErrNoSafeLocation", err)
	}

	alongZ := floor(empty(), 63, 3).
		Set(sky, world.BlockPos{0, 64, 0}, "blue_bed").
		Set(sky, world.BlockPos{0, 64, -1}, "blue_bed")
	got, err = NewEvaluator(alongZ).SafeBedSpawn(head)
	if err != nil {
		t.Fatal(err)
	}
	if want := world.At(sky, 1.5, 64, 0.5); got != want {
		t.Errorf("SafeBedSpawn along Z = %v, want %v", got, want)
	}

	broken := floor(empty(), 63, 3)
	if _, err := NewEvaluator(broken).SafeBedSpawn(head); !errors.Is(err, ErrNotABed) {
		t.Errorf("broken bed error = %v, want ErrNotABed", err)
	}
}
