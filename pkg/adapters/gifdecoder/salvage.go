package gifdecoder

const (
	blockExtension  = 0x21
	blockImage      = 0x2C
	blockTrailer    = 0x3B
	colorTableFlag  = 0x80
	screenHeaderLen = 13 // signature, version and logical screen descriptor
	imageHeaderLen  = 10 // separator and image descriptor
)

// completePrefix walks the block structure of a GIF stream and returns the
// length of the prefix ending after the last fully stored image, together
// with the number of images in it. A stream that breaks off inside a block
// keeps every image before that block.
func completePrefix(data []byte) (end, images int) {
	if len(data) < screenHeaderLen {
		return 0, 0
	}
	pos := screenHeaderLen
	if flags := data[10]; flags&colorTableFlag != 0 {
		pos += colorTableLen(flags)
	}

	for pos < len(data) {
		switch data[pos] {
		case blockExtension:
			next, ok := skipSubBlocks(data, pos+2)
			if !ok {
				return end, images
			}
			pos = next
		case blockImage:
			if pos+imageHeaderLen > len(data) {
				return end, images
			}
			next := pos + imageHeaderLen
			if flags := data[pos+9]; flags&colorTableFlag != 0 {
				next += colorTableLen(flags)
			}
			// LZW minimum code size precedes the data sub-blocks.
			next, ok := skipSubBlocks(data, next+1)
			if !ok {
				return end, images
			}
			pos = next
			end, images = pos, images+1
		default:
			// Trailer or garbage: nothing after it is an image.
			return end, images
		}
	}
	return end, images
}

func colorTableLen(flags byte) int {
	return 3 << (uint(flags&0x07) + 1)
}

// skipSubBlocks returns the offset after the block terminator of the
// sub-block chain starting at pos.
func skipSubBlocks(data []byte, pos int) (int, bool) {
	for pos < len(data) {
		n := int(data[pos])
		pos++
		if n == 0 {
			return pos, true
		}
		pos += n
	}
	return 0, false
}

// withTrailer returns the first end bytes of data terminated by a trailer.
func withTrailer(data []byte, end int) []byte {
	out := make([]byte, end+1)
	copy(out, data[:end])
	out[end] = blockTrailer
	return out
}
