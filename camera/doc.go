/*
DESCRIPTION
  doc.go provides the package documentation for camera.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package camera implements the raw-frame decoder for the IPE/UFO scientific
// CMOS camera family. The camera streams frames as a sequence of 32-bit
// words in one of four versioned wire framings (v0, v4, v5, v6); this
// package reassembles each frame's pixels into a row-major image of 10- or
// 12-bit samples and extracts the header/footer metadata that rides along
// with it.
//
// The decoder is pull-mode and synchronous: a Cursor walks a caller-owned
// word slice, a Decoder locates frame boundaries and dispatches to the
// version-specific channel decoder, and NextFrame returns one frame at a
// time until the cursor runs out of words.
package camera
