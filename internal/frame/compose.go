package frame

import "fmt"

// Compose merges a background layer and a content layer into one frame
// using "over" alpha blending.
//
// Either layer may be nil: a single present layer is returned unmodified
// (byte-for-byte the same buffer), and two nil layers produce an error
// because the caller must supply dimensions some other way. Mismatched
// dimensions are a contract violation, never silently resized.
func Compose(background, content *Buffer) (*Buffer, error) {
	switch {
	case background == nil && content == nil:
		return nil, fmt.Errorf("compose: no layers")
	case content == nil:
		return background, nil
	case background == nil:
		return content, nil
	}
	if background.width != content.width || background.height != content.height {
		return nil, fmt.Errorf("compose: layer dimensions differ: %dx%d vs %dx%d",
			background.width, background.height, content.width, content.height)
	}

	out := background.Clone()
	dst := out.pix
	src := content.pix
	for i := 0; i < len(dst); i += 4 {
		sa := uint32(src[i+3])
		if sa == 255 {
			copy(dst[i:i+4], src[i:i+4])
			continue
		}
		if sa == 0 {
			continue
		}
		da := uint32(dst[i+3])
		// Straight-alpha "over": outA = sa + da*(1-sa),
		// outC = (sc*sa + dc*da*(1-sa)) / outA.
		inv := 255 - sa
		oa := sa*255 + da*inv // scaled by 255
		for c := 0; c < 3; c++ {
			sc := uint32(src[i+c])
			dc := uint32(dst[i+c])
			dst[i+c] = uint8((sc*sa*255 + dc*da*inv + oa/2) / oa)
		}
		dst[i+3] = uint8((oa + 127) / 255)
	}
	return out, nil
}
