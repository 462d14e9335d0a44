package camera

import "testing"

func TestScanToMarkerSkipsJunk(t *testing.T) {
	c := NewCursor([]uint32{0xDEADBEEF, 0x12345678, magicFrameStart | 0x1, 0})
	if err := scanToMarker(c); err != nil {
		t.Fatalf("scanToMarker() error = %v", err)
	}
	if got := c.Pos(); got != 2 {
		t.Errorf("Pos() after scanToMarker = %d, want 2", got)
	}
}

func TestScanToMarkerEndOfStream(t *testing.T) {
	c := NewCursor([]uint32{1, 2, 3})
	if err := scanToMarker(c); err != ErrEndOfStream {
		t.Errorf("scanToMarker() error = %v, want ErrEndOfStream", err)
	}
}

func TestParseHeaderV0(t *testing.T) {
	words := []uint32{
		magicFrameStart | 0x1,
		magic2, magic3, magic4, magic5,
		magic6,
		0x5000ABCD, // frame_number, tagged 0x5
		0x5ABCDEF1, // time_stamp, tagged 0x5
	}
	c := NewCursor(words)
	meta, version, err := parseHeader(c)
	if err != nil {
		t.Fatalf("parseHeader() error = %v", err)
	}
	if version != 0 {
		t.Errorf("version = %d, want 0", version)
	}
	if meta.FrameNumber != 0x0000ABCD {
		t.Errorf("FrameNumber = 0x%x, want 0xABCD", meta.FrameNumber)
	}
	if meta.TimeStamp != 0x0ABCDEF1 {
		t.Errorf("TimeStamp = 0x%x, want 0xABCDEF1", meta.TimeStamp)
	}
	if meta.OutputMode != OutputMode16Channel {
		t.Errorf("OutputMode = %v, want OutputMode16Channel", meta.OutputMode)
	}
	if c.Pos() != headerWords {
		t.Errorf("Pos() = %d, want %d", c.Pos(), headerWords)
	}
}

func TestParseHeaderV4Legacy(t *testing.T) {
	words := []uint32{
		magicFrameStart | 0x1,
		magic2, magic3, magic4, magic5,
		0x50E10064, // row descriptor: cmosis low 7 bits=7, skipped=2, nrows=100
		0x01234567, // frame number (untagged)
		0x50ABCDEF, // timestamp/mode word: mode=0, adc=0, timestamp=0xABCDEF
	}
	c := NewCursor(words)
	meta, version, err := parseHeader(c)
	if err != nil {
		t.Fatalf("parseHeader() error = %v", err)
	}
	if version != 4 {
		t.Errorf("version = %d, want 4", version)
	}
	if meta.NRows != 100 {
		t.Errorf("NRows = %d, want 100", meta.NRows)
	}
	if meta.NSkippedRows != 2 {
		t.Errorf("NSkippedRows = %d, want 2", meta.NSkippedRows)
	}
	// cmosis_start_address is (raw>>21)&0x1FF, a 9-bit field whose top two
	// bits (28,29) overlap the word's 0x5 tag nibble at bits 28-31; with
	// the low 7 bits set to 7 and the tag contributing 1 at bit 28, the
	// field reads back as 7 | (1<<7) == 135.
	if meta.CmosisStartAddress != 135 {
		t.Errorf("CmosisStartAddress = %d, want 135", meta.CmosisStartAddress)
	}
	if meta.FrameNumber != 0x01234567&0x1FFFFFF {
		t.Errorf("FrameNumber = 0x%x, want 0x%x", meta.FrameNumber, uint32(0x01234567)&0x1FFFFFF)
	}
	if meta.TimeStamp != 0xABCDEF {
		t.Errorf("TimeStamp = 0x%x, want 0xABCDEF", meta.TimeStamp)
	}
}

func TestParseHeaderV5Structured(t *testing.T) {
	words := []uint32{
		magicFrameStart, // nibble=0
		magic2, magic3, magic4, magic5,
		0x50E10064,
		0x01234567,
		0x50ABCDEF,
	}
	c := NewCursor(words)
	meta, version, err := parseHeader(c)
	if err != nil {
		t.Fatalf("parseHeader() error = %v", err)
	}
	if version != 5 {
		t.Errorf("version = %d, want 5", version)
	}
	if meta.HeaderVersion != 5 {
		t.Errorf("HeaderVersion = %d, want 5", meta.HeaderVersion)
	}
	if meta.NRows != 100 {
		t.Errorf("NRows = %d, want 100", meta.NRows)
	}
}

func TestParseHeaderV6Structured(t *testing.T) {
	words := []uint32{
		magicFrameStart | 0x2, // nibble=2
		magic2, magic3, magic4,
		0x5000000A, // cmosis=10, mode=0, adc=0
		0x50010032, // nrows=50, skipped=1
		0x56123456, // frame_number=0x123456, dataformat_version=6
		0x50ABCDEF, // timestamp=0xABCDEF
	}
	c := NewCursor(words)
	meta, version, err := parseHeader(c)
	if err != nil {
		t.Fatalf("parseHeader() error = %v", err)
	}
	if version != 6 {
		t.Errorf("version = %d, want 6", version)
	}
	if meta.HeaderVersion != 6 {
		t.Errorf("HeaderVersion = %d, want 6", meta.HeaderVersion)
	}
	if meta.CmosisStartAddress != 10 {
		t.Errorf("CmosisStartAddress = %d, want 10", meta.CmosisStartAddress)
	}
	if meta.NRows != 50 {
		t.Errorf("NRows = %d, want 50", meta.NRows)
	}
	if meta.NSkippedRows != 1 {
		t.Errorf("NSkippedRows = %d, want 1", meta.NSkippedRows)
	}
	if meta.FrameNumber != 0x123456 {
		t.Errorf("FrameNumber = 0x%x, want 0x123456", meta.FrameNumber)
	}
	if meta.TimeStamp != 0xABCDEF {
		t.Errorf("TimeStamp = 0x%x, want 0xABCDEF", meta.TimeStamp)
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	c := NewCursor([]uint32{magicFrameStart | 0x1, magic2, magic3})
	if _, _, err := parseHeader(c); err == nil {
		t.Errorf("parseHeader() with truncated stream err = nil, want error")
	}
}

func TestParseHeaderBadMagic(t *testing.T) {
	words := []uint32{
		magicFrameStart | 0x1,
		magic2, magic3, magic4,
		0xDEADBEEF, // should be magic5
		magic6,
		0x5000ABCD,
		0x5ABCDEF1,
	}
	c := NewCursor(words)
	if _, _, err := parseHeader(c); err == nil {
		t.Errorf("parseHeader() with corrupted magic err = nil, want error")
	}
}

func TestParseHeaderUnsupportedVersion(t *testing.T) {
	// nibble=4: noExtHeader=false (bit0=0), headerVersion=(4>>1)+5=7, unsupported.
	words := make([]uint32, headerWords)
	words[0] = magicFrameStart | 0x4
	c := NewCursor(words)
	if _, _, err := parseHeader(c); err == nil {
		t.Errorf("parseHeader() with unsupported header version err = nil, want error")
	}
}
