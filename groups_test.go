package smallmap

import (
	"slices"
	"testing"

	"golang.org/x/sync/errgroup"
)

type testGroups = Groups[int, int, int, [4]Entry[int, int]]

func TestGroups_Basic(t *testing.T) {
	var g testGroups
	g.Store(1, 10, 100)
	g.Store(1, 11, 110)
	g.Store(2, 20, 200)

	if g.Size() != 2 || g.Len(1) != 2 || g.Len(3) != 0 {
		t.Fatalf("size=%d len(1)=%d", g.Size(), g.Len(1))
	}
	if v, ok := g.Load(1, 11); !ok || v != 110 {
		t.Fatalf("Load(1,11)=(%d,%v)", v, ok)
	}
	if _, ok := g.Load(3, 1); ok {
		t.Fatal("Load on absent group ok")
	}
	if g.Size() != 2 {
		t.Fatal("Load created a group")
	}
	if v, loaded := g.LoadOrStore(2, 20, -1); !loaded || v != 200 {
		t.Fatalf("LoadOrStore=(%d,%v)", v, loaded)
	}

	if !g.Delete(2, 20) || g.Size() != 1 {
		t.Fatalf("Delete last key: size=%d", g.Size())
	}
	if g.Delete(2, 20) {
		t.Fatal("second Delete ok")
	}
	if !g.DeleteGroup(1) || g.DeleteGroup(1) || g.Size() != 0 {
		t.Fatalf("DeleteGroup: size=%d", g.Size())
	}
}

func TestGroups_ComputeDropsEmpty(t *testing.T) {
	g := NewGroups[string, string, int, [2]Entry[string, int]](WithCapacity(32))
	g.Compute("a", func(m *Map[string, int, [2]Entry[string, int]]) {})
	if g.Size() != 0 {
		t.Fatal("empty group kept")
	}
	g.Compute("a", func(m *Map[string, int, [2]Entry[string, int]]) {
		for _, k := range []string{"x", "y", "z"} {
			m.Store(k, len(k))
		}
	})
	s := g.Snapshot("a")
	if s == nil || s.Len() != 3 || !s.Promoted() || cap(s.table.slots) < minTableLen {
		t.Fatalf("snapshot=%v", s)
	}
	s.Clear()
	if g.Len("a") != 3 {
		t.Fatal("snapshot shares state")
	}
	g.Compute("a", func(m *Map[string, int, [2]Entry[string, int]]) { m.Clear() })
	if g.Size() != 0 || g.Snapshot("a") != nil {
		t.Fatal("cleared group kept")
	}
}

func TestGroups_RangeClear(t *testing.T) {
	var g testGroups
	for i := range 10 {
		g.Store(i, i, i)
	}
	var groups []int
	g.RangeGroups(func(group int) bool {
		groups = append(groups, group)
		return true
	})
	slices.Sort(groups)
	if len(groups) != 10 || groups[0] != 0 || groups[9] != 9 {
		t.Fatalf("groups=%v", groups)
	}
	g.Clear()
	if g.Size() != 0 {
		t.Fatalf("size=%d", g.Size())
	}
}

func TestGroups_Concurrent(t *testing.T) {
	const (
		workers = 8
		groups  = 64
		keys    = 6
	)
	var g testGroups
	var eg errgroup.Group
	for w := range workers {
		eg.Go(func() error {
			for grp := range groups {
				for k := range keys {
					g.Compute(grp, func(m *Map[int, int, [4]Entry[int, int]]) {
						*m.Ref(k) += 1
					})
				}
				g.Store(grp, 1000+w, w)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}

	if g.Size() != groups {
		t.Fatalf("size=%d", g.Size())
	}
	for grp := range groups {
		if n := g.Len(grp); n != keys+workers {
			t.Fatalf("group %d len=%d", grp, n)
		}
		for k := range keys {
			if v, _ := g.Load(grp, k); v != workers {
				t.Fatalf("group %d key %d=%d", grp, k, v)
			}
		}
	}
}
