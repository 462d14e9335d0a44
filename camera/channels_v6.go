/*
DESCRIPTION
  channels_v6.go decodes the v6 channel-chunk payload: eight-word chunks,
  each a two-word header followed by a six-word pixel group encoding two
  consecutive rows of twelve-bit samples on a 20-megapixel sensor.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package camera

import "github.com/pkg/errors"

const (
	chunkWordsV6 = 8 // 2-word header + 6-word pixel group (two 3-word row halves)
	rowPitchV6   = 5120
	spaceV6      = 640
)

// decodeChannelsV6 decodes the payload of one frame encoded in the v6 data
// format, terminated by the chunkSentinelV5 word (shared sentinel value
// across the wire formats). It returns the number of payload words
// consumed.
func decodeChannelsV6(dst []uint16, payload []uint32) (int, error) {
	pos := 0
	for {
		if pos >= len(payload) {
			return pos, errors.Wrap(ErrCorruptStream, "v6 payload ended before sentinel")
		}
		if payload[pos] == chunkSentinelV5 {
			return pos, nil
		}
		if pos+chunkWordsV6 > len(payload) {
			return pos, errors.Wrap(ErrCorruptStream, "truncated v6 chunk")
		}

		h0, h1 := payload[pos], payload[pos+1]
		rowNumber := int(h0 & 0xFFF)
		pixelNumber := int((h1 >> 16) & 0xFFF)
		index := rowNumber*rowPitchV6 + pixelNumber
		if index < 0 || index+7*spaceV6+rowPitchV6 >= len(dst) {
			return pos, errors.Wrap(ErrCorruptStream, "v6 chunk index out of range")
		}

		pg := payload[pos+2 : pos+chunkWordsV6]
		decodeRowHalfV6(dst, index, pg[0:3])
		decodeRowHalfV6(dst, index+rowPitchV6, pg[3:6])

		pos += chunkWordsV6
	}
}

// decodeRowHalfV6 unpacks the eight twelve-bit samples packed into a
// three-word half of a v6 chunk's pixel group, writing them to index,
// index+space, ..., index+7*space.
func decodeRowHalfV6(dst []uint16, index int, half []uint32) {
	w0, w1, w2 := half[0], half[1], half[2]

	dst[index+0*spaceV6] = uint16(w0 >> 20)
	dst[index+1*spaceV6] = uint16((w0 >> 8) & 0xFFF)
	dst[index+2*spaceV6] = uint16(((w0<<4)&0xFFF)|(w1>>28))
	dst[index+3*spaceV6] = uint16((w1 >> 16) & 0xFFF)
	dst[index+4*spaceV6] = uint16((w1 >> 4) & 0xFFF)
	dst[index+5*spaceV6] = uint16(((w1<<8)&0xFFF)|(w2>>24))
	dst[index+6*spaceV6] = uint16((w2 >> 12) & 0xFFF)
	dst[index+7*spaceV6] = uint16(w2 & 0xFFF)
}
