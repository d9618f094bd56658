package wide

import "testing"

func TestLoadStoreBGRA(t *testing.T) {
	row := []byte{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}

	tests := []struct {
		name string
		n    int
	}{
		{"full", 4},
		{"partial", 3},
		{"single", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := LoadBGRA(row, tt.n)
			for i := range v {
				want := uint16(0)
				if i < tt.n*4 {
					want = uint16(row[i])
				}
				if v[i] != want {
					t.Fatalf("lane %d = %d, want %d", i, v[i], want)
				}
			}

			out := make([]byte, 16)
			StoreBGRA(out, SplatU16(200), tt.n)
			for i, b := range out {
				want := byte(0)
				if i < tt.n*4 {
					want = 200
				}
				if b != want {
					t.Fatalf("byte %d = %d, want %d", i, b, want)
				}
			}
		})
	}
}

func TestLoadStoreR8(t *testing.T) {
	v := LoadR8([]byte{10, 20, 30, 40}, 4)
	for p := 0; p < 4; p++ {
		for c := 0; c < 4; c++ {
			if v[p*4+c] != uint16((p+1)*10) {
				t.Fatalf("pixel %d lane %d = %d", p, c, v[p*4+c])
			}
		}
	}

	out := make([]byte, 4)
	StoreR8(out, v, 2)
	if out[0] != 10 || out[1] != 20 || out[2] != 0 {
		t.Errorf("StoreR8() = %v", out)
	}
}

func TestFromFloat(t *testing.T) {
	got := FromFloat(Splat4(1), Splat4(0.5), Splat4(0), Splat4(1))
	want := [4]uint16{0, 128, 255, 255}
	for p := 0; p < 4; p++ {
		if got.Pixel(p) != want {
			t.Errorf("pixel %d = %v, want %v (BGRA)", p, got.Pixel(p), want)
		}
	}
}

func TestCoverage(t *testing.T) {
	v := SplatU16(200)
	got := v.Coverage(I32x4{0, 128, 256, 300})
	want := [4]uint16{0, 100, 200, 200}
	for p := 0; p < 4; p++ {
		if got[p*4] != want[p] {
			t.Errorf("pixel %d = %d, want %d", p, got[p*4], want[p])
		}
	}

	inv := v.InvCoverage(I32x4{0, 128, 256, 256})
	if inv[0] != 200 || inv[4] != 100 || inv[8] != 0 {
		t.Errorf("InvCoverage() = %v", inv)
	}
}

func TestCoverageFromDistance(t *testing.T) {
	got := CoverageFromDistance(F32x4{-1, 0, 0.25, 0.5})
	want := I32x4{0, 128, 192, 256}
	if got != want {
		t.Errorf("CoverageFromDistance() = %v, want %v", got, want)
	}
}

func TestSplatUint32(t *testing.T) {
	v := SplatUint32(0xAABBCCDD)
	for i := 0; i < 4; i++ {
		if v.Uint32(i) != 0xAABBCCDD {
			t.Errorf("pixel %d = %#x", i, v.Uint32(i))
		}
	}
}

func TestMask4Pixels(t *testing.T) {
	m := Mask4(0b0101)
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
	px := m.Pixels()
	for i := range px {
		want := uint16(0)
		if (i/4)%2 == 0 {
			want = 0xFFFF
		}
		if px[i] != want {
			t.Errorf("lane %d = %#x, want %#x", i, px[i], want)
		}
	}
}
