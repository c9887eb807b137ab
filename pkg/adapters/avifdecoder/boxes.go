package avifdecoder

import (
	"bytes"
	"encoding/binary"

	"github.com/Eyevinn/mp4ff/mp4"
)

// visualEntryHeader is the size of a VisualSampleEntry body before its
// child boxes.
const visualEntryHeader = 78

type rawBox struct {
	kind    string
	payload []byte
}

// encodeBox serializes b so boxes mp4ff keeps opaque can be parsed by hand.
func encodeBox(b mp4.Box) []byte {
	var buf bytes.Buffer
	if err := b.Encode(&buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

// splitBoxes walks consecutive boxes in data. A truncated tail is ignored.
func splitBoxes(data []byte) []rawBox {
	var boxes []rawBox
	for len(data) >= 8 {
		size := uint64(binary.BigEndian.Uint32(data[0:4]))
		kind := string(data[4:8])
		header := uint64(8)
		switch size {
		case 0:
			size = uint64(len(data))
		case 1:
			if len(data) < 16 {
				return boxes
			}
			size = binary.BigEndian.Uint64(data[8:16])
			header = 16
		}
		if size < header || size > uint64(len(data)) {
			return boxes
		}
		boxes = append(boxes, rawBox{kind: kind, payload: data[header:size]})
		data = data[size:]
	}
	return boxes
}

// unwrap returns the payload of a single serialized box.
func unwrap(encoded []byte) (rawBox, bool) {
	boxes := splitBoxes(encoded)
	if len(boxes) != 1 {
		return rawBox{}, false
	}
	return boxes[0], true
}

// parseTref returns the track IDs of every reference of the given type.
func parseTref(payload []byte, refType string) []uint32 {
	var ids []uint32
	for _, ref := range splitBoxes(payload) {
		if ref.kind != refType {
			continue
		}
		for i := 0; i+4 <= len(ref.payload); i += 4 {
			ids = append(ids, binary.BigEndian.Uint32(ref.payload[i:i+4]))
		}
	}
	return ids
}

// sampleEntry holds what the decoder needs from an av01 sample entry.
type sampleEntry struct {
	format     string
	width      int
	height     int
	configOBUs []byte
	monochrome bool
	hasConfig  bool
}

func parseSampleEntry(b rawBox) sampleEntry {
	e := sampleEntry{format: b.kind}
	if len(b.payload) < visualEntryHeader {
		return e
	}
	e.width = int(binary.BigEndian.Uint16(b.payload[24:26]))
	e.height = int(binary.BigEndian.Uint16(b.payload[26:28]))

	for _, child := range splitBoxes(b.payload[visualEntryHeader:]) {
		if child.kind != "av1C" || len(child.payload) < 4 {
			continue
		}
		e.hasConfig = true
		e.monochrome = child.payload[2]&0x10 != 0
		e.configOBUs = append([]byte(nil), child.payload[4:]...)
	}
	return e
}
