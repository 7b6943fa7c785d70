package mlx90621

// Fixed-width register arithmetic. Values outside a field's range wrap
// modulo 2^n the same way the sensor's registers do.

func wrapU8(n int) int  { return int(uint8(n)) }
func wrapS8(n int) int  { return int(int8(n)) }
func wrapU16(n int) int { return int(uint16(n)) }
func wrapS16(n int) int { return int(int16(n)) }

// twos16 rebuilds a signed 16-bit value from its high and low bytes.
func twos16(hi, lo byte) int {
	return wrapS16(wrapU16(256*int(hi) + int(lo)))
}

// le16 decodes an unsigned little-endian word at b[i].
func le16(b []byte, i int) int {
	return int(b[i+1])<<8 | int(b[i])
}
