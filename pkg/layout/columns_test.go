package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/ghostleg/pkg/errors"
)

func TestColumnLayout(t *testing.T) {
	tests := []struct {
		name                string
		lanes, block, space int
		want                     []int
	}{
		{
			name:  "four lanes",
			lanes: 4, block: 3, space: 1,
			want: []int{5, 18, 6, 18, 6, 18, 6, 18, 5},
		},
		{
			name:  "odd rest goes right",
			lanes: 3, block: 3, space: 1,
			want: []int{0, 27, 9, 27, 9, 27, 1},
		},
		{
			name:  "twelve lanes",
			lanes: 12, block: 3, space: 1,
			want: []int{3, 6, 2, 6, 2, 6, 2, 6, 2, 6, 2, 6, 2, 6, 2, 6, 2, 6, 2, 6, 2, 6, 2, 6, 3},
		},
		{
			name:  "no spaces",
			lanes: 2, block: 1, space: 0,
			want: []int{0, 50, 0, 50, 0},
		},
		{
			name:  "single lane",
			lanes: 1, block: 3, space: 1,
			want: []int{0, 99, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColumnLayout(tt.lanes, tt.block, tt.space)
			if err != nil {
				t.Fatalf("ColumnLayout() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ColumnLayout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnLayoutSumsTo100(t *testing.T) {
	for lanes := 1; lanes <= 25; lanes++ {
		for block := 1; block <= 4; block++ {
			for space := 0; space <= 3; space++ {
				cols, err := ColumnLayout(lanes, block, space)
				if err != nil {
					if !errors.Is(err, errors.ErrCodeInvalidLayout) {
						t.Fatalf("ColumnLayout(%d, %d, %d) error %v, want INVALID_LAYOUT", lanes, block, space, err)
					}
					continue
				}
				if len(cols) != 2*lanes+1 {
					t.Fatalf("ColumnLayout(%d, %d, %d) has %d columns", lanes, block, space, len(cols))
				}
				sum := 0
				for _, c := range cols {
					sum += c
				}
				if sum != 100 {
					t.Errorf("ColumnLayout(%d, %d, %d) sums to %d", lanes, block, space, sum)
				}
			}
		}
	}
}

func TestColumnLayoutErrors(t *testing.T) {
	tests := []struct {
		name                string
		lanes, block, space int
	}{
		{name: "unit rounds to zero", lanes: 30, block: 3, space: 1},
		{name: "no lanes", lanes: 0, block: 3, space: 1},
		{name: "zero block", lanes: 3, block: 0, space: 1},
		{name: "negative space", lanes: 3, block: 3, space: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ColumnLayout(tt.lanes, tt.block, tt.space)
			if !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("ColumnLayout() error = %v, want INVALID_LAYOUT", err)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	got := split([]int{0, 27, 9, 27, 9, 27, 1}, 100)
	want := []span{{0, 0}, {0, 27}, {27, 36}, {36, 63}, {63, 72}, {72, 99}, {99, 100}}
	if !slices.Equal(got, want) {
		t.Errorf("split() = %v, want %v", got, want)
	}

	last := split([]int{5, 18, 6, 18, 6, 18, 6, 18, 5}, 37)
	if end := last[len(last)-1].end; end != 37 {
		t.Errorf("split() ends at %d, want 37", end)
	}
}
