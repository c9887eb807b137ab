package avifdecoder

import (
	"errors"
	"fmt"
)

var errNoSampleTable = errors.New("track has no sample table")

// temporalDelimiter is an OBU_TEMPORAL_DELIMITER with an empty payload.
var temporalDelimiter = []byte{0x12, 0x00}

// sampleData slices every sample of t out of the file bytes.
func (t *track) sampleData(file []byte) ([][]byte, error) {
	stbl := t.stbl
	if stbl == nil || stbl.Stsz == nil || stbl.Stsc == nil {
		return nil, errNoSampleTable
	}

	out := make([][]byte, 0, t.samples)
	for nr := 1; nr <= t.samples; nr++ {
		chunkNr, firstInChunk, err := stbl.Stsc.ChunkNrFromSampleNr(nr)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", nr, err)
		}

		var offset uint64
		switch {
		case stbl.Stco != nil:
			offset, err = stbl.Stco.GetOffset(chunkNr)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", nr, err)
			}
		case stbl.Co64 != nil:
			if chunkNr < 1 || chunkNr > len(stbl.Co64.ChunkOffset) {
				return nil, fmt.Errorf("sample %d: chunk %d out of range", nr, chunkNr)
			}
			offset = stbl.Co64.ChunkOffset[chunkNr-1]
		default:
			return nil, errNoSampleTable
		}

		for s := firstInChunk; s < nr; s++ {
			offset += uint64(stbl.Stsz.GetSampleSize(s))
		}
		size := uint64(stbl.Stsz.GetSampleSize(nr))
		if offset+size > uint64(len(file)) {
			return nil, fmt.Errorf("sample %d: %d bytes at %d past end of file", nr, size, offset)
		}
		out = append(out, file[offset:offset+size])
	}
	return out, nil
}

// obuStream frames samples as a low-overhead AV1 bitstream: one temporal
// unit per sample, with the sequence header OBUs from av1C up front.
func obuStream(config []byte, samples [][]byte) []byte {
	n := len(config)
	for _, s := range samples {
		n += len(temporalDelimiter) + len(s)
	}
	out := make([]byte, 0, n)
	for i, s := range samples {
		out = append(out, temporalDelimiter...)
		if i == 0 {
			out = append(out, config...)
		}
		out = append(out, s...)
	}
	return out
}
