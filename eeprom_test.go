package mlx90621

import "testing"

func TestEEPROMFields(t *testing.T) {
	e := fixtureEEPROM()

	cases := []struct {
		f   field
		out int
	}{
		{fieldACommon, -60},
		{fieldKT1Scale, 8},
		{fieldKT2Scale, 20},
		{fieldACP, -50},
		{fieldBCP, 16},
		{fieldAlphaCP, 0x1234},
		{fieldTGC, 24},
		{fieldAIScale, 1},
		{fieldBIScale, 8},
		{fieldVTh, 6400},
		{fieldKT1, 5760},
		{fieldKT2, -1000},
		{fieldAlpha0, 0x5A3C},
		{fieldAlpha0Scale, 36},
		{fieldDeltaAlphaScale, 27},
		{fieldEmissivity, 0x7999},
		{fieldKsTa, -16},
		{fieldConfigLSB, 0x3B},
		{fieldConfigMSB, 0x46},
		{fieldOscTrim, 0x2A},
	}

	if len(cases) != int(numFields) {
		t.Fatalf("%d cases for %d fields", len(cases), numFields)
	}
	for _, tc := range cases {
		if v := e.value(tc.f); v != tc.out {
			t.Errorf("%v: %d != expected %d", tc.f, v, tc.out)
		}
	}
}

func TestEEPROMSignedness(t *testing.T) {
	var e EEPROM
	e[0xD5] = 0x80
	e[0xD6], e[0xD7] = 0xff, 0xff
	e[0xD8] = 0xff
	e[0xDE], e[0xDF] = 0x00, 0x80

	if v := e.value(fieldBCP); v != -128 {
		t.Errorf("b_cp %d", v)
	}
	if v := e.value(fieldAlphaCP); v != 65535 {
		t.Errorf("alpha_cp %d", v)
	}
	if v := e.value(fieldTGC); v != -1 {
		t.Errorf("tgc %d", v)
	}
	if v := e.value(fieldKT2); v != -32768 {
		t.Errorf("k_t2 %d", v)
	}
	if v := e.value(fieldKT2Scale); v != 10 {
		t.Errorf("k_t2_scale %d", v)
	}
}

func TestEEPROMPixelFields(t *testing.T) {
	e := fixtureEEPROM()

	if v := e.pixel(pixelDeltaA, 63); v != (63*7+20)&0xff {
		t.Errorf("delta_a_i[63] %d", v)
	}
	if v := e.pixel(pixelB, 0); v != -100 {
		t.Errorf("b_i[0] %d", v)
	}
	if v := e.pixel(pixelB, 40); v != 100 {
		t.Errorf("b_i[40] %d", v)
	}
	if v := e.pixel(pixelDeltaAlpha, 10); v != 100 {
		t.Errorf("delta_alpha_i[10] %d", v)
	}
}

func TestFieldString(t *testing.T) {
	if s := fieldKT2Scale.String(); s != "k_t2_scale" {
		t.Errorf("%q", s)
	}
	if s := field(99).String(); s != "field(99)" {
		t.Errorf("%q", s)
	}
}
