/*
DESCRIPTION
  metadata.go provides the Metadata record produced by each successful
  frame decode, and typed views over the three opaque firmware status
  words.

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

// OutputMode identifies how many hardware channels a frame's payload is
// striped across.
type OutputMode uint8

const (
	// OutputMode16Channel is the normal full-resolution read-out mode:
	// one chunk per wire channel per row, 16 channels wide.
	OutputMode16Channel OutputMode = 0

	// OutputMode4Channel is a reduced read-out mode used by the v5 data
	// format, four physical channels per chunk.
	OutputMode4Channel OutputMode = 2
)

// ADCResolution identifies the per-sample bit depth the sensor's ADC was
// configured for. It is informational only: the wire bit-width actually
// used by each data-format version is fixed (10 bits for v0/v4 and v5
// 16-channel mode, 12 bits for v5 4-channel mode and v6) regardless of this
// tag.
type ADCResolution uint8

const (
	ADCResolution10Bit ADCResolution = 0
	ADCResolution11Bit ADCResolution = 1
	ADCResolution12Bit ADCResolution = 2
)

// StatusWord is one of the three opaque 32-bit firmware status fields
// carried in a frame's footer. The bit positions below follow the firmware
// convention referenced by the original UfoDecoderMeta status fields:
// low byte is FSM state, next 12 bits are FIFO occupancy, and bit 31 is the
// PLL/ADC lock flag. The decoder itself never interprets these bits; it
// only stores them and offers these views for callers that want them.
type StatusWord uint32

// FSMState returns the low-byte finite-state-machine state code.
func (s StatusWord) FSMState() uint8 {
	return uint8(s)
}

// FIFOOccupancy returns the 12-bit FIFO occupancy count.
func (s StatusWord) FIFOOccupancy() uint16 {
	return uint16((s >> 8) & 0xFFF)
}

// Locked reports whether the firmware's PLL/ADC lock flag is set.
func (s StatusWord) Locked() bool {
	return s&(1<<31) != 0
}

// Metadata is the out-parameter populated by a successful frame decode. It
// carries the fields defined in spec.md section 3: frame number, time
// stamp, row counts, CMOSIS start address, output-mode and ADC-resolution
// tags, and the three footer status words.
type Metadata struct {
	// FrameNumber is the sequence number of this frame as reported by the
	// header.
	FrameNumber uint32

	// TimeStamp is the camera's free-running timestamp at frame capture.
	TimeStamp uint32

	// NRows is the number of rows actually present in this frame's
	// payload. Populated from the header on v4/v5/v6; on v0 it falls back
	// to the decoder's configured height.
	NRows int

	// NSkippedRows is the number of sensor rows skipped (not read out)
	// before this frame's first row, as reported by the header. Zero on
	// v0, which carries no such field.
	NSkippedRows int

	// CmosisStartAddress is the absolute sensor-row index at which
	// read-out began for this frame. Zero on v0.
	CmosisStartAddress int

	// OutputMode is the channel fan-out mode the payload was encoded
	// with.
	OutputMode OutputMode

	// ADCResolution is the ADC bit-depth tag from the header. Left zero
	// (ADCResolution10Bit) on the v0 path, which carries no such field;
	// see DESIGN.md Open Question 2.
	ADCResolution ADCResolution

	// DataFormatVersion is the payload encoding actually dispatched on:
	// 0, 4, 5 or 6.
	DataFormatVersion int

	// HeaderVersion is the pre-header-reported header framing version (5
	// or 6), or 0 for a legacy v0/v4 stream that carries no pre-header.
	HeaderVersion int

	// Status1, Status2 and Status3 are the three opaque footer status
	// words.
	Status1 StatusWord
	Status2 StatusWord
	Status3 StatusWord

	// FooterValid is false if any footer sentinel mismatched. In
	// non-strict mode this does not invalidate the extracted pixels; see
	// Decoder.Strict.
	FooterValid bool
}
