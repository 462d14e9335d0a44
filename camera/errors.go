/*
DESCRIPTION
  errors.go defines the sentinel error taxonomy for the camera decoder.

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

import "errors"

// Sentinel errors returned by Decoder methods. Callers should compare with
// errors.Is, since internal call sites wrap these with github.com/pkg/errors
// for added context.
var (
	// ErrEndOfStream indicates the cursor is at or past the last word of
	// the stream and no frame-start marker was found; this is a clean
	// termination, not a corruption.
	ErrEndOfStream = errors.New("camera: end of stream")

	// ErrCorruptStream indicates a structural violation: sync lost,
	// sentinel mismatch (in strict mode), bad bpp, channel out of range,
	// or truncated payload.
	ErrCorruptStream = errors.New("camera: corrupt stream")

	// ErrUnsupportedMode indicates a header version, or a recognised
	// header's output-mode or data-format version, that this decoder does
	// not implement.
	ErrUnsupportedMode = errors.New("camera: unsupported mode")

	// ErrOutOfMemory indicates pixel-buffer allocation was requested and
	// failed.
	ErrOutOfMemory = errors.New("camera: out of memory")

	// ErrNullOutput indicates the caller did not supply a pixel-buffer
	// handle at all (as distinct from supplying one that is nil and
	// requesting allocation).
	ErrNullOutput = errors.New("camera: null output")
)

// InvalidWidthError is returned by NewDecoder when width is not a multiple
// of 128.
type InvalidWidthError struct {
	Width int
}

func (e *InvalidWidthError) Error() string {
	return "camera: invalid width: must be a multiple of 128"
}
