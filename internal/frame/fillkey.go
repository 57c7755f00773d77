package frame

// DeriveFillKey splits one straight-alpha BGRA frame into the fill/key
// pair the external keying hardware expects.
//
// The fill buffer carries color premultiplied by its own alpha with the
// original alpha channel preserved. The key buffer is a luma matte: every
// channel of a key pixel equals the source pixel's alpha, so opacity
// becomes brightness. Both buffers are exactly width*height*4 bytes in
// BGRA order and must be transmitted together in one hardware call.
func DeriveFillKey(b *Buffer) (fill, key []byte) {
	src := b.pix
	fill = make([]byte, len(src))
	key = make([]byte, len(src))
	for i := 0; i < len(src); i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 255:
			copy(fill[i:i+4], src[i:i+4])
		case 0:
			// fill stays zero
		default:
			fill[i+0] = uint8((uint32(src[i+0])*a + 127) / 255)
			fill[i+1] = uint8((uint32(src[i+1])*a + 127) / 255)
			fill[i+2] = uint8((uint32(src[i+2])*a + 127) / 255)
			fill[i+3] = src[i+3]
		}
		k := src[i+3]
		key[i+0] = k
		key[i+1] = k
		key[i+2] = k
		key[i+3] = k
	}
	return fill, key
}
