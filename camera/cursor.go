/*
DESCRIPTION
  cursor.go provides Cursor, a read position over a borrowed 32-bit word
  slice.

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

// Cursor walks a caller-owned, immutable slice of 32-bit words. It exposes
// no error conditions of its own: callers must check Remaining before any
// access that could read past the end, in which case the caller should
// treat the stream as corrupt.
//
// A Cursor is not restartable from an arbitrary offset; SeekTo is only ever
// used to move to a position already known to be a frame-start (or to the
// very beginning of the stream).
//
// The peek-without-consuming / read-and-advance split follows the same
// shape as codec/h264/h264dec/bits.BitReader's PeekBits/ReadBits, adapted
// from a bit-oriented io.Reader source to a word-oriented slice source.
type Cursor struct {
	words []uint32
	pos   int
}

// NewCursor returns a Cursor positioned at the start of words.
func NewCursor(words []uint32) *Cursor {
	return &Cursor{words: words}
}

// Peek returns the word k positions ahead of the current read position
// without advancing it. ok is false if that position is past the end of
// the stream.
func (c *Cursor) Peek(k int) (word uint32, ok bool) {
	i := c.pos + k
	if i < 0 || i >= len(c.words) {
		return 0, false
	}
	return c.words[i], true
}

// Advance moves the read position forward by k words. It never moves past
// the end of the stream; advancing beyond the end simply saturates at
// len(words).
func (c *Cursor) Advance(k int) {
	c.pos += k
	if c.pos > len(c.words) {
		c.pos = len(c.words)
	}
}

// SeekTo moves the read position to an absolute word offset.
func (c *Cursor) SeekTo(pos int) {
	c.pos = pos
}

// Pos returns the current absolute read position, in words.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of words left between the current read
// position and the end of the stream.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.words) {
		return 0
	}
	return len(c.words) - c.pos
}

// Slice returns the words from the current read position to the end of the
// stream, without copying.
func (c *Cursor) Slice() []uint32 {
	if c.pos >= len(c.words) {
		return nil
	}
	return c.words[c.pos:]
}

// AtEnd reports whether the cursor has no more words to read.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.words)
}
