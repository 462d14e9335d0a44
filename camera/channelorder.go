/*
DESCRIPTION
  channelorder.go provides the fixed wire-channel to physical-column-group
  de-permutation table used by the v0 and v4 channel decoders.

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

// numChannels is the number of hardware read-out channels striped across
// one sensor row.
const numChannels = 16

// pixelsPerChannel is the number of pixels each read-out channel contributes
// to a row.
const pixelsPerChannel = 128

// channelOrder remaps a wire channel index (as found in a v0/v4 chunk
// header) to the physical column group it belongs to in image space. It is
// read-only package state, fixed by the sensor's hardware wiring, and safe
// for concurrent use by any number of decoders.
//
// v5 and v6 do not use this table: their chunk headers carry the physical
// column/row location directly.
var channelOrder = [numChannels]uint8{15, 13, 14, 12, 10, 8, 11, 7, 9, 6, 5, 2, 4, 3, 0, 1}
