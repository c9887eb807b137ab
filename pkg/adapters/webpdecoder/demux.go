package webpdecoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/webp"
)

var (
	errNotWebP   = errors.New("not a RIFF/WEBP file")
	errTruncated = errors.New("truncated chunk")
)

// chunk is one RIFF chunk with its payload.
type chunk struct {
	fourCC string
	data   []byte
}

// anmfFrame is one ANMF chunk of an animated WebP.
type anmfFrame struct {
	x, y       int
	width      int
	height     int
	durationMs int
	blend      bool // alpha-blend onto the canvas; false replaces the rectangle
	dispose    bool // clear the rectangle to transparent after display
	payload    []chunk
}

// container is the demuxed structure of a WebP file.
type container struct {
	canvasWidth  int
	canvasHeight int
	animated     bool
	frames       []anmfFrame
}

// demux splits a WebP file into its frames without decoding pixels.
func demux(data []byte) (*container, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, errNotWebP
	}
	riffSize := int(binary.LittleEndian.Uint32(data[4:8]))
	end := 8 + riffSize
	if end > len(data) {
		end = len(data)
	}

	chunks, err := readChunks(data[12:end])
	if err != nil {
		return nil, err
	}

	c := &container{}
	for _, ch := range chunks {
		switch ch.fourCC {
		case "VP8X":
			if len(ch.data) < 10 {
				return nil, fmt.Errorf("VP8X: %w", errTruncated)
			}
			c.animated = ch.data[0]&0x02 != 0
			c.canvasWidth = uint24(ch.data[4:7]) + 1
			c.canvasHeight = uint24(ch.data[7:10]) + 1
		case "ANMF":
			f, err := parseANMF(ch.data)
			if err != nil {
				return nil, err
			}
			c.frames = append(c.frames, f)
		}
	}
	return c, nil
}

// checkFrameTable compares durations read by webpmux against the ANMF
// headers and describes the first disagreement.
func checkFrameTable(durations []int, c *container) error {
	if !c.animated {
		return nil
	}
	if len(durations) != len(c.frames) {
		return fmt.Errorf("webpmux listed %d frames, container holds %d", len(durations), len(c.frames))
	}
	for i, f := range c.frames {
		if durations[i] != f.durationMs {
			return fmt.Errorf("frame %d: webpmux %d ms, ANMF header %d ms", i, durations[i], f.durationMs)
		}
	}
	return nil
}

func parseANMF(data []byte) (anmfFrame, error) {
	if len(data) < 16 {
		return anmfFrame{}, fmt.Errorf("ANMF: %w", errTruncated)
	}
	sub, err := readChunks(data[16:])
	if err != nil {
		return anmfFrame{}, fmt.Errorf("ANMF: %w", err)
	}
	flags := data[15]
	return anmfFrame{
		x:          uint24(data[0:3]) * 2,
		y:          uint24(data[3:6]) * 2,
		width:      uint24(data[6:9]) + 1,
		height:     uint24(data[9:12]) + 1,
		durationMs: uint24(data[12:15]),
		blend:      flags&0x02 == 0,
		dispose:    flags&0x01 != 0,
		payload:    sub,
	}, nil
}

func readChunks(data []byte) ([]chunk, error) {
	var chunks []chunk
	for len(data) >= 8 {
		fourCC := string(data[0:4])
		size := int(binary.LittleEndian.Uint32(data[4:8]))
		if size < 0 || 8+size > len(data) {
			return nil, fmt.Errorf("%s: %w", fourCC, errTruncated)
		}
		chunks = append(chunks, chunk{fourCC: fourCC, data: data[8 : 8+size]})
		next := 8 + size + size%2
		if next > len(data) {
			break
		}
		data = data[next:]
	}
	return chunks, nil
}

func uint24(b []byte) int {
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16
}

func putUint24(b []byte, v int) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

// decodeFrame wraps image chunks into a standalone WebP and decodes it.
// A separate ALPH chunk needs the extended header so the decoder applies it.
func decodeFrame(payload []chunk, width, height int) (image.Image, error) {
	hasAlpha := false
	for _, ch := range payload {
		if ch.fourCC == "ALPH" {
			hasAlpha = true
		}
	}

	var body bytes.Buffer
	if hasAlpha {
		vp8x := make([]byte, 10)
		vp8x[0] = 0x10
		putUint24(vp8x[4:7], width-1)
		putUint24(vp8x[7:10], height-1)
		writeChunk(&body, "VP8X", vp8x)
	}
	for _, ch := range payload {
		switch ch.fourCC {
		case "ALPH", "VP8 ", "VP8L":
			writeChunk(&body, ch.fourCC, ch.data)
		}
	}

	var file bytes.Buffer
	file.WriteString("RIFF")
	binary.Write(&file, binary.LittleEndian, uint32(4+body.Len()))
	file.WriteString("WEBP")
	file.Write(body.Bytes())

	return webp.Decode(&file)
}

func writeChunk(buf *bytes.Buffer, fourCC string, data []byte) {
	buf.WriteString(fourCC)
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
}
