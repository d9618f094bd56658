package wide

// U8x16 is a chunk of four 32-bit pixels exactly as stored in a row.
type U8x16 [16]uint8

// Unpack widens each lane to 16 bits.
func (v U8x16) Unpack() U16x16 {
	var r U16x16
	for i := range v {
		r[i] = uint16(v[i])
	}
	return r
}

// Uint32 returns pixel i as a little-endian 32-bit word.
func (v U8x16) Uint32(i int) uint32 {
	return uint32(v[i*4]) | uint32(v[i*4+1])<<8 | uint32(v[i*4+2])<<16 | uint32(v[i*4+3])<<24
}

// SplatUint32 repeats a little-endian 32-bit pixel across the chunk.
func SplatUint32(p uint32) U8x16 {
	var r U8x16
	for i := 0; i < 4; i++ {
		r[i*4] = uint8(p)         // #nosec G115
		r[i*4+1] = uint8(p >> 8)  // #nosec G115
		r[i*4+2] = uint8(p >> 16) // #nosec G115
		r[i*4+3] = uint8(p >> 24) // #nosec G115
	}
	return r
}
