package mlx90621

import "fmt"

// EEPROMSize is the size of the factory calibration memory.
const EEPROMSize = 256

// EEPROM is a snapshot of the factory calibration memory.
type EEPROM [EEPROMSize]byte

type fieldKind int

const (
	kindU8 fieldKind = iota
	kindS8
	kindU16 // low byte at offset, high byte at offset+1
	kindS16
	kindHiNibble
	kindLoNibble
)

type field int

const (
	fieldACommon field = iota
	fieldKT1Scale
	fieldKT2Scale
	fieldACP
	fieldBCP
	fieldAlphaCP
	fieldTGC
	fieldAIScale
	fieldBIScale
	fieldVTh
	fieldKT1
	fieldKT2
	fieldAlpha0
	fieldAlpha0Scale
	fieldDeltaAlphaScale
	fieldEmissivity
	fieldKsTa
	fieldConfigLSB
	fieldConfigMSB
	fieldOscTrim
	numFields
)

// fieldDef locates a calibration value. bias is added after decoding and
// carries the fixed part of scale exponents.
type fieldDef struct {
	name   string
	offset int
	kind   fieldKind
	bias   int
}

var fields = [numFields]fieldDef{
	fieldACommon:         {"a_common", 0xD0, kindS16, 0},
	fieldKT1Scale:        {"k_t1_scale", 0xD2, kindHiNibble, 0},
	fieldKT2Scale:        {"k_t2_scale", 0xD2, kindLoNibble, 10},
	fieldACP:             {"a_cp", 0xD3, kindS16, 0},
	fieldBCP:             {"b_cp", 0xD5, kindS8, 0},
	fieldAlphaCP:         {"alpha_cp", 0xD6, kindU16, 0},
	fieldTGC:             {"tgc", 0xD8, kindS8, 0},
	fieldAIScale:         {"a_i_scale", 0xD9, kindHiNibble, 0},
	fieldBIScale:         {"b_i_scale", 0xD9, kindLoNibble, 0},
	fieldVTh:             {"v_th", 0xDA, kindS16, 0},
	fieldKT1:             {"k_t1", 0xDC, kindS16, 0},
	fieldKT2:             {"k_t2", 0xDE, kindS16, 0},
	fieldAlpha0:          {"alpha_0", 0xE0, kindU16, 0},
	fieldAlpha0Scale:     {"alpha_0_scale", 0xE2, kindU8, 0},
	fieldDeltaAlphaScale: {"delta_alpha_scale", 0xE3, kindU8, 0},
	fieldEmissivity:      {"emissivity", 0xE4, kindU16, 0},
	fieldKsTa:            {"ks_ta", 0xE6, kindS16, 0},
	fieldConfigLSB:       {"config_lsb", 0xF5, kindU8, 0},
	fieldConfigMSB:       {"config_msb", 0xF6, kindU8, 0},
	fieldOscTrim:         {"osc_trim", 0xF7, kindU8, 0},
}

func (f field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fields[f].name
}

// Per-pixel calibration bytes, one per pixel starting at the base offset.
type pixelField int

const (
	pixelDeltaA pixelField = iota
	pixelB
	pixelDeltaAlpha
	numPixelFields
)

var pixelFields = [numPixelFields]fieldDef{
	pixelDeltaA:     {"delta_a_i", 0x00, kindU8, 0},
	pixelB:          {"b_i", 0x40, kindS8, 0},
	pixelDeltaAlpha: {"delta_alpha_i", 0x80, kindU8, 0},
}

func (e *EEPROM) decode(s fieldDef, offset int) int {
	var v int
	switch s.kind {
	case kindU8:
		v = wrapU8(int(e[offset]))
	case kindS8:
		v = wrapS8(int(e[offset]))
	case kindU16:
		v = le16(e[:], offset)
	case kindS16:
		v = twos16(e[offset+1], e[offset])
	case kindHiNibble:
		v = int(e[offset]&0xF0) >> 4
	case kindLoNibble:
		v = int(e[offset] & 0x0F)
	}
	return v + s.bias
}

func (e *EEPROM) value(f field) int {
	s := fields[f]
	return e.decode(s, s.offset)
}

func (e *EEPROM) pixel(f pixelField, index int) int {
	s := pixelFields[f]
	return e.decode(s, s.offset+index)
}
