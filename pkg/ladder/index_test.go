package ladder

import "testing"

func TestNextPreviousIndex(t *testing.T) {
	tests := []struct {
		i, limit   int
		next, prev int
	}{
		{i: 0, limit: 4, next: 1, prev: 3},
		{i: 3, limit: 4, next: 0, prev: 2},
		{i: 1, limit: 4, next: 2, prev: 0},
		{i: 0, limit: 1, next: 0, prev: 0},
	}

	for _, tt := range tests {
		if got := NextIndex(tt.i, tt.limit); got != tt.next {
			t.Errorf("NextIndex(%d, %d) = %d, want %d", tt.i, tt.limit, got, tt.next)
		}
		if got := PreviousIndex(tt.i, tt.limit); got != tt.prev {
			t.Errorf("PreviousIndex(%d, %d) = %d, want %d", tt.i, tt.limit, got, tt.prev)
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	for limit := 1; limit <= 12; limit++ {
		for i := range limit {
			if got := PreviousIndex(NextIndex(i, limit), limit); got != i {
				t.Errorf("limit %d: Previous(Next(%d)) = %d", limit, i, got)
			}
		}
	}
}

func TestIndexZeroLimitPanics(t *testing.T) {
	for name, fn := range map[string]func(int, int) int{
		"NextIndex":     NextIndex,
		"PreviousIndex": PreviousIndex,
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s(0, 0) should panic", name)
				}
			}()
			fn(0, 0)
		})
	}
}
