// SPDX-License-Identifier: MIT

package state

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// hash computes the identity of s.
//
// The digest input is the bus position followed by the bus manifest and then
// every stop manifest in stop order. Each manifest is prefixed with its length
// so that moving a passenger between two adjacent manifests always changes the
// input. In HashWorld mode manifests are sorted first, making the id
// independent of boarding order; in HashLineage mode they are taken as stored
// and parentID is appended.
func (s *State) hash(parentID uint64) uint64 {
	size := 8 + 4*(len(s.stops)+1) + 8*(s.Waiting()+len(s.bus.Passengers)) + 8
	buf := make([]byte, 0, size)

	canonical := s.opts.HashMode != HashLineage
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.bus.Current))
	buf = appendManifest(buf, s.bus.Passengers, canonical)
	for _, st := range s.stops {
		buf = appendManifest(buf, st.Passengers, canonical)
	}
	if !canonical {
		buf = binary.LittleEndian.AppendUint64(buf, parentID)
	}

	return xxhash.Sum64(buf)
}

func appendManifest(buf []byte, ps []Passenger, canonical bool) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(ps)))
	if canonical && len(ps) > 1 {
		ps = slices.Clone(ps)
		slices.SortFunc(ps, comparePassengers)
	}
	for _, p := range ps {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Origin))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Destination))
	}
	return buf
}

func comparePassengers(a, b Passenger) int {
	switch {
	case a.Origin != b.Origin:
		return a.Origin - b.Origin
	default:
		return a.Destination - b.Destination
	}
}
