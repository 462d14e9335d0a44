/*
DESCRIPTION
  file.go provides a word-stream source that reads a raw camera recording
  from a file.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// Package file provides a camera word-stream source backed by a raw
// recording file on disk.
package file

import (
	"encoding/binary"
	"io"
	"os"
	"sync"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Source reads a camera recording from a file, optionally looping, and
// exposes its contents as a stream of 32-bit words.
type Source struct {
	f         *os.File
	path      string
	loop      bool
	isRunning bool
	log       logging.Logger
	set       bool
	mu        sync.Mutex
}

// New returns a Source that still needs Set called before Start.
func New(l logging.Logger) *Source { return &Source{log: l} }

// NewWith returns a Source already configured with path and loop, so Set
// does not need to be called.
func NewWith(l logging.Logger, path string, loop bool) *Source {
	return &Source{log: l, path: path, loop: loop, set: true}
}

// Name returns the name of the source.
func (s *Source) Name() string {
	return "File"
}

// Set configures the path to read from and whether reading loops back to
// the start of the file on reaching the end.
func (s *Source) Set(path string, loop bool) error {
	s.path = path
	s.loop = loop
	s.set = true
	return nil
}

// Start will open the file at path.
func (s *Source) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if !s.set {
		return errors.New("file source has not been set with a path")
	}
	s.f, err = os.Open(s.path)
	if err != nil {
		return errors.Wrap(err, "could not open recording file")
	}
	s.isRunning = true
	return nil
}

// Stop will close the file such that any further reads will fail.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.f.Close()
	if err == nil {
		s.isRunning = false
		return nil
	}
	return err
}

// Read implements io.Reader. If Start has not been called, or Start has been
// called and Stop has since been called, an error is returned.
func (s *Source) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return 0, errors.New("file source is closed, Start has not been called")
	}

	n, err := s.f.Read(p)
	if err != nil && err != io.EOF {
		return n, err
	}

	if (n < len(p) || err == io.EOF) && s.loop {
		s.log.Info("looping input file")
		// In the case that we reach end of file but loop is true, we want to
		// seek to start and keep reading from there.
		_, err = s.f.Seek(0, io.SeekStart)
		if err != nil {
			return 0, errors.Wrap(err, "could not seek to start of file for input loop")
		}

		// Now that we've seeked to start, let's try reading again.
		m, rerr := s.f.Read(p[n:])
		if rerr != nil {
			return n + m, errors.Wrap(rerr, "could not read after start seek")
		}
		n += m
	}
	return n, err
}

// IsRunning is used to determine if the Source is running.
func (s *Source) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f != nil && s.isRunning
}

// Words reads the whole remaining contents of the file and returns it
// reinterpreted as a stream of little-endian 32-bit words. The byte length
// read must be a multiple of 4.
func (s *Source) Words() ([]uint32, error) {
	b, err := io.ReadAll(readerFunc(s.Read))
	if err != nil {
		return nil, errors.Wrap(err, "could not read recording file")
	}
	if len(b)%4 != 0 {
		return nil, errors.Errorf("recording file length %d is not a multiple of 4", len(b))
	}

	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// readerFunc adapts a Read method value to io.Reader so it can be passed to
// io.ReadAll. On a Source configured with loop=true, Read wraps back to the
// start of the file instead of reporting io.EOF, so Words does not return.
type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
