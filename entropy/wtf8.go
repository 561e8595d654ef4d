package entropy

import "fmt"

// EncodeWTF8 renders the UTF-16 code units as WTF-8: identical to UTF-8 for
// well-formed text, but tolerant of lone surrogate halves (which JS string
// literals can legitimately contain). A high surrogate followed by a low
// surrogate is combined into one 4-byte sequence; an unpaired surrogate
// unit is encoded directly as an independent 3-byte sequence instead of
// being replaced.
func EncodeWTF8(units []uint16) []byte {
	out := make([]byte, 0, len(units)*2)
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out,
				byte(0xC0|(u>>6)),
				byte(0x80|(u&0x3F)),
			)
		case isHighSurrogate(u) && i+1 < len(units) && isLowSurrogate(units[i+1]):
			cp := combineSurrogates(u, units[i+1])
			out = append(out, encodeCodePoint4(cp)...)
			i++
		default:
			// Either a BMP code point outside the surrogate range, or an
			// unpaired surrogate half: both encode as an independent
			// 3-byte sequence, which is exactly what distinguishes WTF-8
			// from strict UTF-8.
			out = append(out, encodeCodePoint3(uint32(u))...)
		}
	}
	return out
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

func combineSurrogates(hi, lo uint16) uint32 {
	return 0x10000 + (uint32(hi)-0xD800)<<10 + (uint32(lo) - 0xDC00)
}

func encodeCodePoint3(cp uint32) []byte {
	return []byte{
		byte(0xE0 | (cp >> 12)),
		byte(0x80 | ((cp >> 6) & 0x3F)),
		byte(0x80 | (cp & 0x3F)),
	}
}

func encodeCodePoint4(cp uint32) []byte {
	return []byte{
		byte(0xF0 | (cp >> 18)),
		byte(0x80 | ((cp >> 12) & 0x3F)),
		byte(0x80 | ((cp >> 6) & 0x3F)),
		byte(0x80 | (cp & 0x3F)),
	}
}

// DecodeWTF8 is EncodeWTF8's inverse, returning the original UTF-16 code
// units (lone surrogates included).
func DecodeWTF8(b []byte) ([]uint16, error) {
	var out []uint16
	for i := 0; i < len(b); {
		c0 := b[i]
		switch {
		case c0 < 0x80:
			out = append(out, uint16(c0))
			i++
		case c0&0xE0 == 0xC0:
			if i+1 >= len(b) {
				return nil, fmt.Errorf("entropy: truncated WTF-8 2-byte sequence")
			}
			cp := uint32(c0&0x1F)<<6 | uint32(b[i+1]&0x3F)
			out = append(out, uint16(cp))
			i += 2
		case c0&0xF0 == 0xE0:
			if i+2 >= len(b) {
				return nil, fmt.Errorf("entropy: truncated WTF-8 3-byte sequence")
			}
			cp := uint32(c0&0x0F)<<12 | uint32(b[i+1]&0x3F)<<6 | uint32(b[i+2]&0x3F)
			out = append(out, uint16(cp))
			i += 3
		case c0&0xF8 == 0xF0:
			if i+3 >= len(b) {
				return nil, fmt.Errorf("entropy: truncated WTF-8 4-byte sequence")
			}
			cp := uint32(c0&0x07)<<18 | uint32(b[i+1]&0x3F)<<12 | uint32(b[i+2]&0x3F)<<6 | uint32(b[i+3]&0x3F)
			cp -= 0x10000
			out = append(out, uint16(0xD800+(cp>>10)), uint16(0xDC00+(cp&0x3FF)))
			i += 4
		default:
			return nil, fmt.Errorf("entropy: invalid WTF-8 lead byte 0x%02x at offset %d", c0, i)
		}
	}
	return out, nil
}

// StringToUTF16 converts a Go string (assumed well-formed UTF-8) into UTF-16
// code units, for callers that only have a string and not the raw units a
// JS importer would have preserved directly.
func StringToUTF16(s string) []uint16 {
	var out []uint16
	for _, r := range s {
		if r > 0xFFFF {
			r -= 0x10000
			out = append(out, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
		} else {
			out = append(out, uint16(r))
		}
	}
	return out
}

// UTF16ToString converts well-formed UTF-16 code units back to a Go string.
// Lone surrogates are replaced with the Unicode replacement character,
// since a Go string cannot itself hold an unpaired surrogate; round-tripping
// through WTF-8 bytes (not through this function) is what preserves them.
func UTF16ToString(units []uint16) string {
	var out []rune
	for i := 0; i < len(units); i++ {
		u := units[i]
		if isHighSurrogate(u) && i+1 < len(units) && isLowSurrogate(units[i+1]) {
			out = append(out, rune(combineSurrogates(u, units[i+1])))
			i++
			continue
		}
		out = append(out, rune(u))
	}
	return string(out)
}
