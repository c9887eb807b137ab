// Package contentdetect classifies input bytes into the container families
// the converter knows how to animate.
package contentdetect

import (
	"bytes"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/user/stickerize/pkg/media"
)

// sniffLen is enough for every signature checked here.
const sniffLen = 512

// avifBrands are the ftyp brands of still and sequence AVIF files.
var avifBrands = map[string]bool{
	"avif": true,
	"avis": true,
}

// Result is the outcome of classification.
type Result struct {
	Kind media.ContentKind
	MIME string
}

// Detect classifies data by its leading bytes. File names are never
// consulted. Anything unrecognized is media.KindOther.
func Detect(data []byte) Result {
	if isAVIF(data) {
		return Result{Kind: media.KindAVIF, MIME: "image/avif"}
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	t, err := filetype.Match(head)
	if err != nil {
		return Result{Kind: media.KindOther}
	}

	switch t {
	case matchers.TypeGif:
		return Result{Kind: media.KindGIF, MIME: t.MIME.Value}
	case matchers.TypeWebp:
		return Result{Kind: media.KindWebP, MIME: t.MIME.Value}
	default:
		if t == filetype.Unknown {
			return Result{Kind: media.KindOther}
		}
		return Result{Kind: media.KindOther, MIME: t.MIME.Value}
	}
}

// Classify returns only the content kind.
func Classify(data []byte) media.ContentKind {
	return Detect(data).Kind
}

// isAVIF decodes the leading ftyp box and checks its brands.
func isAVIF(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}

	box, err := mp4.DecodeBox(0, bytes.NewReader(data))
	if err != nil {
		return false
	}
	ftyp, ok := box.(*mp4.FtypBox)
	if !ok {
		return false
	}

	if avifBrands[ftyp.MajorBrand()] {
		return true
	}
	for _, b := range ftyp.CompatibleBrands() {
		if avifBrands[b] {
			return true
		}
	}
	return false
}
