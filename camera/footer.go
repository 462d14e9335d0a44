/*
DESCRIPTION
  footer.go parses the eight-word frame footer and the trailing fill
  padding that may follow it.

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

const footerWords = 8

// fillTokens are the benign padding words that may follow a frame's footer.
// Revisions accreted 0xDEADBEEF and 0x98BADCFE over time; all are accepted,
// none are required (spec.md section 9, Open Question 3).
var fillTokens = map[uint32]bool{
	0x89ABCDEF: true,
	0x01234567: true,
	0x00000000: true,
	0xDEADBEEF: true,
	0x98BADCFE: true,
}

// parseFooter parses the eight-word footer at c's current position,
// populating meta's status words. Sentinel mismatches are recorded in
// meta.FooterValid but only invalidate the decode (ErrCorruptStream) when
// strict is true; this matches the original decoder, which continues to
// return an already-extracted pixel array even when the footer's fixed
// words don't match exactly.
func parseFooter(c *Cursor, meta *Metadata, strict bool) error {
	if c.Remaining() < footerWords {
		return errors.Wrap(ErrCorruptStream, "truncated footer")
	}

	w0, _ := c.Peek(0)
	status1, _ := c.Peek(1)
	status2, _ := c.Peek(2)
	status3, _ := c.Peek(3)
	// words 4 and 5 are reserved and ignored.
	w6, _ := c.Peek(6)
	w7, _ := c.Peek(7)

	meta.Status1 = StatusWord(status1)
	meta.Status2 = StatusWord(status2)
	meta.Status3 = StatusWord(status3)
	meta.FooterValid = w0 == footerStart && w6 == footerZero && w7 == footerTail

	c.Advance(footerWords)

	if strict && !meta.FooterValid {
		return errors.Wrapf(ErrCorruptStream, "footer sentinel mismatch: start=0x%08x zero=0x%08x tail=0x%08x", w0, w6, w7)
	}
	return nil
}

// consumeFill advances c past any trailing fill padding: an optional
// 0x00000000, 0x01111111 (or 0x00000000, 0x00000000) pair, followed by any
// run of recognised fill tokens.
func consumeFill(c *Cursor) {
	w0, ok0 := c.Peek(0)
	w1, ok1 := c.Peek(1)
	if ok0 && ok1 && w0 == 0x00000000 && (w1 == 0x01111111 || w1 == 0x00000000) {
		c.Advance(2)
	}

	for {
		w, ok := c.Peek(0)
		if !ok || !fillTokens[w] {
			return
		}
		c.Advance(1)
	}
}
