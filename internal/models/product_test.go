package models

import "testing"

func TestSellingPrice(t *testing.T) {
	cases := []struct {
		name          string
		hpp           float64
		marginPercent float64
		want          float64
	}{
		{"standard margin", 350000, 35, 472500},
		{"zero margin sells at cost", 200000, 0, 200000},
		{"zero cost", 0, 35, 0},
		{"hundred percent doubles", 100000, 100, 200000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SellingPrice(tc.hpp, tc.marginPercent)
			if got != tc.want {
				t.Fatalf("SellingPrice(%v, %v) = %v, want %v", tc.hpp, tc.marginPercent, got, tc.want)
			}
		})
	}
}
