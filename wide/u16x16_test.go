package wide

import "testing"

func TestSplatU16(t *testing.T) {
	tests := []struct {
		name  string
		value uint16
	}{
		{"zero", 0},
		{"max", 255},
		{"mid", 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplatU16(tt.value)
			for i, v := range result {
				if v != tt.value {
					t.Errorf("element %d = %d, want %d", i, v, tt.value)
				}
			}
		})
	}
}

func TestU16x16_Wrapping(t *testing.T) {
	a := SplatU16(10)
	b := SplatU16(20)

	if got := a.Sub(b); got != SplatU16(65526) {
		t.Errorf("Sub() = %v, want wrap to 65526", got[0])
	}
	if got := SplatU16(0xFFFF).Add(SplatU16(2)); got != SplatU16(1) {
		t.Errorf("Add() = %v, want wrap to 1", got[0])
	}
	if got := SplatU16(300).Mul(SplatU16(300)); got != SplatU16(uint16(90000&0xFFFF)) {
		t.Errorf("Mul() = %v, want %d", got[0], 90000&0xFFFF)
	}
}

func TestU16x16_MulDiv255(t *testing.T) {
	tests := []struct {
		name string
		a, b uint16
		want uint16
	}{
		{"zero", 0, 255, 0},
		{"opaque", 255, 255, 255},
		{"half by full", 128, 255, 128},
		{"full by half", 255, 128, 128},
		{"mixed", 100, 200, 78},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplatU16(tt.a).MulDiv255(SplatU16(tt.b))
			if got[0] != tt.want {
				t.Errorf("MulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got[0], tt.want)
			}
		})
	}
}

func TestU16x16_Div255(t *testing.T) {
	tests := []struct {
		in, want uint16
	}{
		{0, 0},
		{127, 0},
		{128, 1},
		{255, 1},
		{65025, 255},
	}

	for _, tt := range tests {
		got := SplatU16(tt.in).Div255()
		if got[0] != tt.want {
			t.Errorf("Div255(%d) = %d, want %d", tt.in, got[0], tt.want)
		}
	}
}

func TestU16x16_Alphas(t *testing.T) {
	v := U16x16{
		1, 2, 3, 40,
		5, 6, 7, 80,
		9, 10, 11, 120,
		13, 14, 15, 160,
	}
	want := U16x16{
		40, 40, 40, 40,
		80, 80, 80, 80,
		120, 120, 120, 120,
		160, 160, 160, 160,
	}
	if got := v.Alphas(); got != want {
		t.Errorf("Alphas() = %v, want %v", got, want)
	}
}

func TestU16x16_Select(t *testing.T) {
	a := SplatU16(10)
	b := SplatU16(20)
	got := a.Select(AlphaMask, b)
	for i, v := range got {
		want := uint16(20)
		if i%4 == 3 {
			want = 10
		}
		if v != want {
			t.Errorf("lane %d = %d, want %d", i, v, want)
		}
	}
}

func TestU16x16_Compare(t *testing.T) {
	a := U16x16{5, 10, 15}
	b := SplatU16(10)

	gt := a.Greater(b)
	if gt[0] != 0 || gt[1] != 0 || gt[2] != 0xFFFF {
		t.Errorf("Greater() = %v", gt[:3])
	}
	eq := a.Equal(b)
	if eq[0] != 0 || eq[1] != 0xFFFF || eq[2] != 0 {
		t.Errorf("Equal() = %v", eq[:3])
	}
}

func TestU16x16_Pack(t *testing.T) {
	v := U16x16{0, 255, 256, 1000}
	got := v.Pack()
	if got[0] != 0 || got[1] != 255 || got[2] != 255 || got[3] != 255 {
		t.Errorf("Pack() = %v, want saturation at 255", got[:4])
	}
	if back := got.Unpack(); back[1] != 255 {
		t.Errorf("Unpack() = %v", back[:4])
	}
}

func TestU16x16_Inv(t *testing.T) {
	if got := SplatU16(55).Inv(); got != SplatU16(200) {
		t.Errorf("Inv() = %v, want 200", got[0])
	}
}
