package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrations(t *testing.T) {
	db := openTestDB(t)
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != len(migrations) {
		t.Errorf("version = %d, want %d", v, len(migrations))
	}
	if err := db.MigrateUp(); err != nil {
		t.Errorf("second MigrateUp: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewPuzzleRepository(db).Save(3, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, ok, err := NewPuzzleRepository(db).Load(3); err != nil || !ok {
		t.Errorf("Load after reopen: ok = %v, err = %v", ok, err)
	}
}

func TestPuzzleRepository(t *testing.T) {
	repo := NewPuzzleRepository(openTestDB(t))

	if _, ok, err := repo.Load(3); err != nil || ok {
		t.Fatalf("empty Load: ok = %v, err = %v", ok, err)
	}
	if err := repo.Save(3, []byte(`["first"]`)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(3, []byte(`["second"]`)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(4, []byte(`["four"]`)); err != nil {
		t.Fatal(err)
	}

	blob, ok, err := repo.Load(3)
	if err != nil || !ok {
		t.Fatalf("Load: ok = %v, err = %v", ok, err)
	}
	if string(blob) != `["second"]` {
		t.Errorf("blob = %s", blob)
	}

	if err := repo.Delete(3); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := repo.Load(3); ok {
		t.Error("blob survived Delete")
	}
	if _, ok, _ := repo.Load(4); !ok {
		t.Error("Delete removed another order")
	}
}

func TestSolveLifecycle(t *testing.T) {
	repo := NewSolveRepository(openTestDB(t))
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := repo.Create(3, ModeScramble, "ana", start)
	if err != nil {
		t.Fatal(err)
	}
	s, err := repo.Get(id)
	if err != nil || s == nil {
		t.Fatalf("Get: %v, %v", s, err)
	}
	if s.EndedAt != nil || s.Duration() != 0 {
		t.Errorf("unfinished solve has end %v, duration %v", s.EndedAt, s.Duration())
	}

	if err := repo.Finish(id, start.Add(42*time.Second), 42*time.Second, 57); err != nil {
		t.Fatal(err)
	}
	s, _ = repo.Get(id)
	if s.Duration() != 42*time.Second || s.MoveCount != 57 || s.Player != "ana" || s.Order != 3 {
		t.Errorf("solve = %+v", s)
	}
	if !s.StartedAt.Equal(start) {
		t.Errorf("started = %v, want %v", s.StartedAt, start)
	}

	if err := repo.Finish("missing", start, time.Second, 1); err == nil {
		t.Error("Finish of unknown solve succeeded")
	}
	if s, err := repo.Get("missing"); s != nil || err != nil {
		t.Errorf("Get(missing) = %v, %v", s, err)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	repo := NewSolveRepository(openTestDB(t))
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	add := func(order int, mode, player string, d time.Duration, finish bool, offset int) {
		t.Helper()
		at := start.Add(time.Duration(offset) * time.Minute)
		id, err := repo.Create(order, mode, player, at)
		if err != nil {
			t.Fatal(err)
		}
		if finish {
			if err := repo.Finish(id, at.Add(d), d, 10); err != nil {
				t.Fatal(err)
			}
		}
	}
	add(3, ModeScramble, "slow", 90*time.Second, true, 0)
	add(3, ModeScramble, "fast", 30*time.Second, true, 1)
	add(3, ModeScramble, "tie-late", 60*time.Second, true, 3)
	add(3, ModeScramble, "tie-early", 60*time.Second, true, 2)
	add(3, ModeScramble, "quit", 0, false, 4)
	add(3, ModeShuffle, "other-mode", time.Second, true, 5)
	add(4, ModeScramble, "other-order", time.Second, true, 6)

	board, err := repo.Leaderboard(3, ModeScramble, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"fast", "tie-early", "tie-late", "slow"}
	if len(board) != len(want) {
		t.Fatalf("got %d entries, want %d", len(board), len(want))
	}
	for i, s := range board {
		if s.Player != want[i] {
			t.Errorf("rank %d = %s, want %s", i+1, s.Player, want[i])
		}
	}

	top, _ := repo.Leaderboard(3, ModeScramble, 2)
	if len(top) != 2 {
		t.Errorf("limit 2 returned %d", len(top))
	}

	recent, _ := repo.List(1)
	if len(recent) != 1 || recent[0].Player != "other-order" {
		t.Errorf("List(1) = %+v", recent)
	}

	latest, err := repo.Recent(3, ModeScramble, 10)
	if err != nil {
		t.Fatal(err)
	}
	wantRecent := []string{"tie-late", "tie-early", "fast", "slow"}
	if len(latest) != len(wantRecent) {
		t.Fatalf("Recent returned %d entries, want %d", len(latest), len(wantRecent))
	}
	for i, s := range latest {
		if s.Player != wantRecent[i] {
			t.Errorf("recent %d = %s, want %s", i, s.Player, wantRecent[i])
		}
	}
}

func TestTurnLogCascades(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)
	turns := NewTurnRepository(db)

	id, err := solves.Create(3, ModeScramble, "ana", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := turns.Create(TurnRecord{SolveID: id, TurnIndex: 0, Pivot: 4, Axis: mgl64.Vec3{0, 1, 0}, Quarters: 1, Source: "drag"}); err != nil {
		t.Fatal(err)
	}
	batch := []TurnRecord{
		{SolveID: id, TurnIndex: 1, TsMs: 500, Pivot: 7, Axis: mgl64.Vec3{-1, 0, 0}, Quarters: -1, Source: "plane"},
		{SolveID: id, TurnIndex: 2, TsMs: 900, Pivot: 9, Axis: mgl64.Vec3{0, 0, 1}, Quarters: 2, Source: "plane"},
	}
	if err := turns.CreateBatch(batch); err != nil {
		t.Fatal(err)
	}

	got, err := turns.GetBySolve(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[1].Axis != (mgl64.Vec3{-1, 0, 0}) || got[2].Quarters != 2 {
		t.Errorf("turns = %+v", got)
	}

	if err := turns.CreateBatch([]TurnRecord{{SolveID: id, TurnIndex: 2, Source: "plane"}}); err == nil {
		t.Error("duplicate turn index accepted")
	}

	if err := solves.Delete(id); err != nil {
		t.Fatal(err)
	}
	if n, _ := turns.Count(id); n != 0 {
		t.Errorf("%d turns survived solve deletion", n)
	}
}

func TestSwapTargetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)
	turns := NewTurnRepository(db)

	id, err := solves.Create(3, ModeShuffle, "ana", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	batch := []TurnRecord{
		{SolveID: id, TurnIndex: 0, Pivot: 4, Axis: mgl64.Vec3{0, 1, 0}, Quarters: 1, Target: -1, Source: "plane"},
		{SolveID: id, TurnIndex: 1, Pivot: 12, Target: 40, Source: "swap"},
	}
	if err := turns.CreateBatch(batch); err != nil {
		t.Fatal(err)
	}
	got, err := turns.GetBySolve(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Target != -1 || got[1].Target != 40 || got[1].Source != "swap" {
		t.Errorf("turns = %+v", got)
	}
}
