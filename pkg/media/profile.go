package media

// Profile holds the output constraints of one sticker kind.
type Profile struct {
	Kind       StickerKind
	ScaleMode  ScaleMode
	Width      int // bounding box for ScaleFitLongest, exact size for ScaleFixed
	Height     int
	BitrateCap int // kilobits, ffmpeg "K"
	MaxBytes   int
}

// ProfileFor returns the profile of the given sticker kind.
// Unknown kinds get the regular profile.
func ProfileFor(kind StickerKind) Profile {
	if kind == StickerEmoji {
		return Profile{
			Kind:       StickerEmoji,
			ScaleMode:  ScaleFixed,
			Width:      100,
			Height:     100,
			BitrateCap: 20,
			MaxBytes:   MaxSizeEmoji,
		}
	}
	return Profile{
		Kind:       StickerRegular,
		ScaleMode:  ScaleFitLongest,
		Width:      512,
		Height:     512,
		BitrateCap: 50,
		MaxBytes:   MaxSizeSticker,
	}
}

// FitSize returns the output dimensions for a source of w x h pixels.
// The longer side of a fit-longest profile becomes exactly the bounding box
// and the other side keeps the aspect ratio, rounded down to an even number.
func (p Profile) FitSize(w, h int) (int, int) {
	if p.ScaleMode == ScaleFixed || w <= 0 || h <= 0 {
		return p.Width, p.Height
	}
	if w >= h {
		return p.Width, evenFloor(h * p.Width / w)
	}
	return evenFloor(w * p.Height / h), p.Height
}

func evenFloor(v int) int {
	v -= v % 2
	if v < 2 {
		return 2
	}
	return v
}
