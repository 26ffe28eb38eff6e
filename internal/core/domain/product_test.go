package domain

import "testing"

func TestNormalizeProductName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shoe", "SHOE"},
		{"SHOE", "SHOE"},
		{"  Running Shoe ", "RUNNING SHOE"},
		{"tênis", "TÊNIS"},
	}
	for _, tt := range tests {
		if got := NormalizeProductName(tt.in); got != tt.want {
			t.Errorf("NormalizeProductName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProductSame(t *testing.T) {
	base := &Product{Name: "SHOE", Price: 1000, Quantity: 5}

	if !base.Same(&Product{Name: "SHOE", Price: 1000, Quantity: 5}) {
		t.Error("identical fields should compare equal")
	}
	if base.Same(&Product{Name: "BOOT", Price: 1000, Quantity: 5}) {
		t.Error("different name should not compare equal")
	}
	if base.Same(&Product{Name: "SHOE", Price: 1200, Quantity: 5}) {
		t.Error("different price should not compare equal")
	}
	if base.Same(&Product{Name: "SHOE", Price: 1000, Quantity: 7}) {
		t.Error("different quantity should not compare equal")
	}
}
