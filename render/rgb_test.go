package render

import "testing"

func TestBlendLinear(t *testing.T) {
	white := MustHex("#ffffff")
	red := MustHex("#c03020")

	if got := Blend(red, white, 0); got != red {
		t.Errorf("Blend at 0 = %v, want %v", got, red)
	}
	if got := Blend(red, white, 1); got != white {
		t.Errorf("Blend at 1 = %v, want %v", got, white)
	}

	// Half of white in linear light is well above the sRGB midpoint
	mid := Blend(RGBBlack, white, 0.5)
	if mid.R < 187 || mid.R > 188 || mid.R != mid.G || mid.G != mid.B {
		t.Errorf("Expected linear midpoint gray near 188, got %v", mid)
	}

	if got := Shade(white, 1); got != RGBBlack {
		t.Errorf("Full shade = %v, want black", got)
	}
	prev := 1.0
	for _, k := range []float64{0.1, 0.3, 0.6, 0.9} {
		l := Shade(red, k).Luma()
		if l >= prev {
			t.Errorf("Shade(%v) luma %f not darker than %f", k, l, prev)
		}
		prev = l
	}
}
