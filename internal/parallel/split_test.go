package parallel

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		n, parts int
		want     []Range
	}{
		{name: "empty", n: 0, parts: 4, want: nil},
		{name: "single part", n: 5, parts: 1, want: []Range{{0, 5}}},
		{name: "even", n: 6, parts: 3, want: []Range{{0, 2}, {2, 4}, {4, 6}}},
		{name: "uneven", n: 7, parts: 3, want: []Range{{0, 3}, {3, 5}, {5, 7}}},
		{name: "more parts than items", n: 2, parts: 8, want: []Range{{0, 1}, {1, 2}}},
		{name: "zero parts", n: 3, parts: 0, want: []Range{{0, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.n, tt.parts)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Split(%d, %d)[%d] = %v, want %v", tt.n, tt.parts, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplit_CoversRange(t *testing.T) {
	for n := 1; n < 50; n++ {
		for parts := 1; parts < 10; parts++ {
			next := 0
			for _, r := range Split(n, parts) {
				if r.Start != next || r.Len() <= 0 {
					t.Fatalf("Split(%d, %d): bad range %v", n, parts, r)
				}
				next = r.End
			}
			if next != n {
				t.Fatalf("Split(%d, %d) ends at %d", n, parts, next)
			}
		}
	}
}
