/*
DESCRIPTION
  decoder.go provides Decoder, the pull-mode frame iterator combining the
  cursor, framer and the three versioned channel decoders into the
  AtStart -> InHeader -> InPayload -> InFooter -> AtStart state machine.

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

// state is the decoder's position within one frame's decode cycle.
type state int

const (
	atStart state = iota
	inHeader
	inPayload
	inFooter
)

// Decoder iterates a word stream frame by frame. A Decoder is not safe for
// concurrent use by multiple goroutines; independent Decoders over
// independent Cursors may run concurrently, since the only shared state is
// the read-only channelOrder table.
type Decoder struct {
	height int
	width  int
	cursor *Cursor
	state  state

	// Strict promotes soft validation failures (footer sentinel mismatch,
	// data-word and chunk-header tag-bit mismatch) to hard CorruptStream
	// errors. Off by default.
	Strict bool

	// FastUnpack selects the batch-oriented v0/v4 sample unpacker
	// (unpackQuadFast) in place of the portable scalar path. Both produce
	// identical output; this only changes which code path runs it.
	FastUnpack bool
}

// NewDecoder returns a Decoder configured for frames of the given height
// (rows) and width (pixels per row), reading from words. It returns
// *InvalidWidthError if width is not a multiple of 128.
func NewDecoder(height, width int, words []uint32) (*Decoder, error) {
	if width%pixelsPerChannel != 0 {
		return nil, errors.WithStack(&InvalidWidthError{Width: width})
	}
	return &Decoder{
		height: height,
		width:  width,
		cursor: NewCursor(words),
		state:  atStart,
	}, nil
}

// SetRawData rebinds the decoder to a new word stream, resetting its read
// position to the start of words.
func (d *Decoder) SetRawData(words []uint32) {
	d.cursor = NewCursor(words)
	d.state = atStart
}

// Pos returns the decoder's current absolute read position, in words.
func (d *Decoder) Pos() int {
	return d.cursor.Pos()
}

// NextFrame decodes the next frame from the bound stream into *pixels,
// allocating a height*width buffer first if *pixels is nil, and populates
// *meta. It returns ErrNullOutput if pixels is nil, ErrEndOfStream when the
// cursor has no more frames, or CorruptStream/UnsupportedMode on a
// malformed frame.
func (d *Decoder) NextFrame(pixels *[]uint16, meta *Metadata) error {
	if pixels == nil {
		return ErrNullOutput
	}
	if *pixels == nil {
		*pixels = make([]uint16, d.height*d.width)
	}
	_, err := d.decodeOneFrame(d.cursor, *pixels, meta)
	return err
}

// DecodeFrame decodes a single frame starting at the first word of words
// into pixels, which must already be sized to at least height*width, and
// populates meta. It returns the number of words consumed (0 on error) and
// does not affect the decoder's bound stream or position.
func (d *Decoder) DecodeFrame(words []uint32, pixels []uint16, meta *Metadata) (int, error) {
	c := NewCursor(words)
	return d.decodeOneFrame(c, pixels, meta)
}

// decodeOneFrame runs the AtStart -> InHeader -> InPayload -> InFooter cycle
// once against c, writing pixels and meta. On any error other than
// ErrEndOfStream the cursor is left having advanced by at least one word
// past its position on entry, to guarantee forward progress for callers that
// iterate past errors.
func (d *Decoder) decodeOneFrame(c *Cursor, pixels []uint16, meta *Metadata) (int, error) {
	start := c.Pos()
	d.state = atStart

	if err := scanToMarker(c); err != nil {
		return 0, err
	}

	d.state = inHeader
	hdr, dataFormatVersion, err := parseHeader(c)
	if err != nil {
		return 0, d.forceProgress(c, start, err)
	}

	nRows := hdr.NRows
	if nRows == 0 {
		nRows = d.height
	}
	hdr.NRows = nRows

	d.state = inPayload
	payload := c.Slice()

	var consumed int
	switch dataFormatVersion {
	case 0, 4:
		consumed, err = decodeChannelsV0V4(pixels, payload, d.width, d.height, nRows, dataFormatVersion, d.Strict, d.FastUnpack)
	case 5:
		consumed, err = decodeChannelsV5(pixels, payload, d.width, hdr.OutputMode, d.Strict)
	case 6:
		consumed, err = decodeChannelsV6(pixels, payload)
	default:
		err = errors.Wrapf(ErrUnsupportedMode, "data-format version %d", dataFormatVersion)
	}
	if err != nil {
		return 0, d.forceProgress(c, start, err)
	}
	c.Advance(consumed)

	d.state = inFooter
	if err := parseFooter(c, &hdr, d.Strict); err != nil {
		return 0, d.forceProgress(c, start, err)
	}
	consumeFill(c)

	d.state = atStart
	*meta = hdr
	return c.Pos() - start, nil
}

// forceProgress guarantees the cursor ends up strictly past start, per the
// state machine's forward-progress requirement on error (spec.md section
// 4.6), and returns err unchanged for the caller to propagate.
func (d *Decoder) forceProgress(c *Cursor, start int, err error) error {
	d.state = atStart
	if c.Pos() <= start {
		c.SeekTo(start)
		c.Advance(1)
	}
	return err
}
