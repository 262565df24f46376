package components

import "testing"

func TestDenseSwapRemove(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		remove int
		want   []int
	}{
		{"middle", []int{1, 2, 3, 4}, 1, []int{1, 4, 3}},
		{"first", []int{1, 2, 3}, 0, []int{3, 2}},
		{"last", []int{1, 2, 3}, 2, []int{1, 2}},
		{"only", []int{7}, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDense[int](0)
			for _, v := range tt.values {
				d.Push(v)
			}
			d.SwapRemove(tt.remove)

			if d.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", d.Len(), len(tt.want))
			}
			for i, w := range tt.want {
				if got := *d.At(i); got != w {
					t.Errorf("At(%d) = %d, want %d", i, got, w)
				}
			}
		})
	}
}

func TestDenseOutOfRangePanics(t *testing.T) {
	d := NewDense[int](4)
	d.Push(1)
	defer func() {
		if recover() == nil {
			t.Error("At(1) on a store of length 1 did not panic")
		}
	}()
	_ = d.At(1)
}

func TestDenseRemoveFuncNoStaleRead(t *testing.T) {
	d := NewDense[Target](0)
	for i := 0; i < 6; i++ {
		d.Push(Target{Stage: uint32(i), Alive: i%2 == 0})
	}

	seen := map[uint32]int{}
	removed := d.RemoveFunc(func(tg *Target) bool {
		seen[tg.Stage]++
		return !tg.Alive
	})

	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	for stage, n := range seen {
		if n != 1 {
			t.Errorf("element %d examined %d times, want 1", stage, n)
		}
	}
	for i := 0; i < d.Len(); i++ {
		if !d.At(i).Alive {
			t.Errorf("dead target left at index %d", i)
		}
	}
	// The vacated tail must not keep references to removed values.
	if tail := d.items[:cap(d.items)][d.Len():]; len(tail) > 0 && tail[0].Alive {
		t.Error("tail slot not zeroed after removal")
	}
}

func TestDenseClear(t *testing.T) {
	d := NewDense[Projectile](2)
	d.Push(Projectile{TimeRemaining: 1})
	d.Push(Projectile{TimeRemaining: 1})
	d.Clear()
	if d.Len() != 0 {
		t.Errorf("Len() after Clear = %d", d.Len())
	}
}

func TestVec2Rotate(t *testing.T) {
	v := Vec2{1, 0}.Rotate(float32(3.14159265 / 2))
	if abs(v.X) > 1e-6 || abs(v.Y-1) > 1e-6 {
		t.Errorf("Rotate(pi/2) = %+v, want (0, 1)", v)
	}
	if p := (Vec2{1, 0}).Perp(); p != (Vec2{0, -1}) {
		t.Errorf("Perp = %+v, want (0, -1)", p)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
