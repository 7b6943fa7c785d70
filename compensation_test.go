package mlx90621

import (
	"math"
	"testing"

	"golang.org/x/xerrors"

	"periph.io/x/periph/conn/physic"
)

func TestPixelIndex(t *testing.T) {
	seen := make(map[int]bool)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			i := PixelIndex(row, col)
			if i < 0 || i >= PixelCount {
				t.Fatalf("(%d, %d) -> %d out of range", row, col, i)
			}
			if seen[i] {
				t.Fatalf("(%d, %d) -> %d already used", row, col, i)
			}
			seen[i] = true
			if r, c := PixelPosition(i); r != row || c != col {
				t.Errorf("%d -> (%d, %d), expected (%d, %d)", i, r, c, row, col)
			}
		}
	}
	if len(seen) != PixelCount {
		t.Errorf("%d indexes used", len(seen))
	}
	if i := PixelIndex(1, 2); i != 9 {
		t.Errorf("(1, 2) -> %d", i)
	}
}

func compensateFixture(t *testing.T, ta float64) Frame {
	t.Helper()
	e := fixtureEEPROM()
	c := deriveCoefficients(&e, 3)
	var f Frame
	if err := compensate(&e, &c, ta, fixtureFrame(), wrapS16(fixtureVCPHigh<<8|fixtureVCPLow), &f); err != nil {
		t.Fatalf("ta %v: %v", ta, err)
	}
	return f
}

func TestCompensate(t *testing.T) {
	f := compensateFixture(t, fixtureTa)

	cases := []struct {
		row, col int
		to       float64
		tenths   int
	}{
		{0, 0, 33.99401020619388, 339},
		{1, 0, 33.874105599936, 338},
		{2, 7, 31.01453829142571, 310},
		{3, 15, 32.17513605738287, 321},
	}

	for _, tc := range cases {
		if to := f.At(tc.row, tc.col); math.Abs(to-tc.to) > 0.01 {
			t.Errorf("(%d, %d): %v != expected %v", tc.row, tc.col, to, tc.to)
		}
		if v := f.Tenths[tc.row][tc.col]; v != tc.tenths {
			t.Errorf("(%d, %d): %d tenths != expected %d", tc.row, tc.col, v, tc.tenths)
		}
	}
}

func TestCompensateTenths(t *testing.T) {
	for _, ta := range []float64{fixtureTa, -20, 0, 55} {
		f := compensateFixture(t, ta)
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				to := f.Celsius[row][col]
				if math.IsNaN(to) {
					t.Fatalf("ta %v: NaN at (%d, %d)", ta, row, col)
				}
				if f.Tenths[row][col] != int(math.Trunc(to*10)) {
					t.Errorf("ta %v: (%d, %d) %d != trunc(%v*10)", ta, row, col, f.Tenths[row][col], to)
				}
			}
		}
	}
}

func TestFrameTemperature(t *testing.T) {
	var f Frame
	f.Celsius[2][3] = 25
	want := physic.ZeroCelsius + 25*physic.Kelvin
	if got := f.Temperature(2, 3); got != want {
		t.Errorf("%v != expected %v", got, want)
	}
	if got := f.Temperature(0, 0); got != physic.ZeroCelsius {
		t.Errorf("%v != expected %v", got, physic.ZeroCelsius)
	}
}

func TestCompensateAlphaCP(t *testing.T) {
	e := fixtureEEPROM()
	c := deriveCoefficients(&e, 3)
	if c.AlphaCP == 0 {
		t.Fatal("alpha_cp rounded to zero")
	}

	vcp := wrapS16(fixtureVCPHigh<<8 | fixtureVCPLow)
	frame := fixtureFrame()
	cases := []struct {
		alphaCP float64
		to      float64
	}{
		{c.AlphaCP, 33.99401020619388},
		// What a truncated alpha_cp would produce.
		{0, 33.83400362909265},
	}
	for _, tc := range cases {
		c.AlphaCP = tc.alphaCP
		var f Frame
		if err := compensate(&e, &c, fixtureTa, frame, vcp, &f); err != nil {
			t.Fatal(err)
		}
		if to := f.At(0, 0); math.Abs(to-tc.to) > 0.01 {
			t.Errorf("alpha_cp %v: %v != expected %v", tc.alphaCP, to, tc.to)
		}
	}
}

func TestCompensateInvalidPixel(t *testing.T) {
	e := fixtureEEPROM()
	c := deriveCoefficients(&e, 3)
	raw := make([]byte, frameSize)
	for i := 0; i < PixelCount; i++ {
		raw[2*i], raw[2*i+1] = 0x00, 0x80
	}

	var f Frame
	err := compensate(&e, &c, MinAmbient, raw, wrapS16(fixtureVCPHigh<<8|fixtureVCPLow), &f)
	if !xerrors.Is(err, ErrInvalidPixel) {
		t.Fatalf("unexpected error %v", err)
	}
	var pe *PixelError
	if !xerrors.As(err, &pe) || pe.Row != 0 || pe.Col != 0 || pe.Raw != -32768 {
		t.Errorf("unexpected %v", err)
	}
	if f.Tenths[0][0] != 0 || !math.IsNaN(c.objectTemperature(&e, 0, -32768, 0, MinAmbient)) {
		t.Errorf("invalid pixel stored as %d", f.Tenths[0][0])
	}
}
