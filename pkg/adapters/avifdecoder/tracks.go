package avifdecoder

import (
	"fmt"
	"math"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/stickerize/pkg/media"
)

type trackRole int

const (
	roleOther trackRole = iota
	roleColor
	roleAlpha
)

func (r trackRole) String() string {
	switch r {
	case roleColor:
		return "color"
	case roleAlpha:
		return "alpha"
	default:
		return "other"
	}
}

// track is one trak box reduced to the fields stream selection and
// decoding rely on.
type track struct {
	id        uint32
	handler   string
	name      string
	auxl      []uint32
	entry     sampleEntry
	timescale uint32
	samples   int
	stbl      *mp4.StblBox
}

// role derives the stream role from track metadata alone.
func (t *track) role() trackRole {
	switch {
	case t.handler == "auxv", len(t.auxl) > 0, t.name == "Alpha", t.entry.monochrome:
		return roleAlpha
	case t.handler == "pict", t.handler == "vide":
		return roleColor
	default:
		return roleOther
	}
}

func (t *track) String() string {
	return fmt.Sprintf("track %d (%s, %s, %d samples)", t.id, t.handler, t.role(), t.samples)
}

func readTracks(moov *mp4.MoovBox) []*track {
	var tracks []*track
	for _, trak := range moov.Traks {
		t := &track{timescale: 1000}
		if trak.Tkhd != nil {
			t.id = trak.Tkhd.TrackID
		}
		for _, child := range trak.Children {
			if child.Type() != "tref" {
				continue
			}
			if b, ok := unwrap(encodeBox(child)); ok {
				t.auxl = parseTref(b.payload, "auxl")
			}
		}

		mdia := trak.Mdia
		if mdia == nil {
			tracks = append(tracks, t)
			continue
		}
		if mdia.Hdlr != nil {
			t.handler = mdia.Hdlr.HandlerType
			t.name = mdia.Hdlr.Name
		}
		if mdia.Mdhd != nil && mdia.Mdhd.Timescale > 0 {
			t.timescale = mdia.Mdhd.Timescale
		}
		if mdia.Minf != nil && mdia.Minf.Stbl != nil {
			stbl := mdia.Minf.Stbl
			t.stbl = stbl
			if stbl.Stsz != nil {
				t.samples = int(stbl.Stsz.SampleNumber)
			}
			if stbl.Stsd != nil && len(stbl.Stsd.Children) > 0 {
				if b, ok := unwrap(encodeBox(stbl.Stsd.Children[0])); ok {
					t.entry = parseSampleEntry(b)
				}
			}
		}
		tracks = append(tracks, t)
	}
	return tracks
}

// selectStreams picks the primary color track and its alpha track.
//
// The primary is the first color track with samples. The alpha is the
// single alpha track referencing the primary through auxl, or failing that
// the single alpha track with no reference at all. Anything else is
// ambiguous. A nil alpha means the primary carries no detached alpha.
func selectStreams(tracks []*track) (primary, alpha *track, err error) {
	for _, t := range tracks {
		if t.role() == roleColor && t.samples > 0 {
			primary = t
			break
		}
	}
	if primary == nil {
		return nil, nil, fmt.Errorf("%w: no color track among %d tracks", media.ErrAmbiguousContainer, len(tracks))
	}

	var linked, unlinked []*track
	for _, t := range tracks {
		if t == primary || t.role() != roleAlpha {
			continue
		}
		switch {
		case len(t.auxl) == 0:
			unlinked = append(unlinked, t)
		case contains(t.auxl, primary.id):
			linked = append(linked, t)
		}
	}

	switch {
	case len(linked) == 1:
		return primary, linked[0], nil
	case len(linked) > 1:
		return nil, nil, fmt.Errorf("%w: %d alpha tracks reference track %d", media.ErrAmbiguousContainer, len(linked), primary.id)
	case len(unlinked) == 1:
		return primary, unlinked[0], nil
	case len(unlinked) > 1:
		return nil, nil, fmt.Errorf("%w: %d unreferenced alpha tracks", media.ErrAmbiguousContainer, len(unlinked))
	}
	return primary, nil, nil
}

func contains(ids []uint32, id uint32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// timestampsMs converts the decode times of a track to rounded milliseconds.
// The second result holds each sample's own stts duration in ms.
func (t *track) timestampsMs() (ts, deltas []int) {
	if t.stbl == nil || t.stbl.Stts == nil {
		return nil, nil
	}
	scale := float64(t.timescale)
	for nr := 1; nr <= t.samples; nr++ {
		decodeTime, dur := t.stbl.Stts.GetDecodeTime(uint32(nr))
		ts = append(ts, int(math.Round(float64(decodeTime)*1000/scale)))
		deltas = append(deltas, int(math.Round(float64(dur)*1000/scale)))
	}
	return ts, deltas
}

// durationsFromTimestamps turns presentation offsets into per-frame
// durations. The last frame lasts until totalMs when that lies after its
// timestamp, otherwise it keeps lastDelta.
func durationsFromTimestamps(ts []int, totalMs, lastDelta int) media.DurationList {
	if len(ts) == 0 {
		return nil
	}
	out := make(media.DurationList, len(ts))
	for i := 0; i+1 < len(ts); i++ {
		out[i] = ts[i+1] - ts[i]
	}
	last := len(ts) - 1
	if rest := totalMs - ts[last]; totalMs > 0 && rest > 0 {
		out[last] = rest
	} else {
		out[last] = lastDelta
	}
	return out
}
