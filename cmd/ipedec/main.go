/*
DESCRIPTION
  ipedec is a command-line front end for the camera package: it decodes one
  or more raw IPE/UFO camera recordings frame by frame, writing each frame's
  pixels to a sibling .raw file and, optionally, a debayered PNG preview.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Command ipedec decodes raw IPE/UFO camera recordings from files given on
// the command line.
package main

import (
	"encoding/binary"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ufodaq/ufodecode/camera"
	"github.com/ufodaq/ufodecode/config"
	"github.com/ufodaq/ufodecode/debayer"
	"github.com/ufodaq/ufodecode/device/file"
)

// Logging related constants.
const (
	logPath      = "ipedec.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days

	// maxRows is the largest row count the frame format allows (spec.md
	// section 6); used to size the pixel buffer when --num-rows is left
	// at its header-deferring default of 0, since the buffer must be
	// allocated before the header reporting the true row count is read.
	maxRows = 2047
)

func main() {
	numRows := flag.Int("num-rows", 0, "number of rows per frame; 0 defers to the header-reported row count where available")
	numColumns := flag.Int("num-columns", config.DefaultWidth, "number of pixels per row, must be a multiple of 128")
	clearFrame := flag.Bool("clear-frame", false, "zero the pixel buffer before each frame decode")
	dryRun := flag.Bool("dry-run", false, "decode frames but do not write output files")
	verbose := flag.Bool("verbose", false, "enable debug-level logging")
	printFrameRate := flag.Bool("print-frame-rate", false, "print the average decode frame rate on completion")
	printNumRows := flag.Bool("print-num-rows", false, "print each frame's decoded row count")
	cont := flag.Bool("continue", false, "keep decoding subsequent frames in a file after one frame fails")
	convertBayer := flag.Bool("convert-bayer", false, "additionally write a debayered PNG preview for each frame")
	flag.Parse()

	verbosity := logging.Info
	if *verbose {
		verbosity = logging.Debug
	}
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(verbosity, io.MultiWriter(fileLog, os.Stderr), true)

	cfg := config.Config{
		NumRows:      *numRows,
		NumColumns:   *numColumns,
		ClearFrame:   *clearFrame,
		Continue:     *cont,
		ConvertBayer: *convertBayer,
	}

	paths := flag.Args()
	if len(paths) == 0 {
		l.Fatal("no input files given")
	}

	var failed bool
	for _, path := range paths {
		if err := decodeFile(l, cfg, path, *dryRun, *printFrameRate, *printNumRows); err != nil {
			l.Error("failed to decode file", "path", path, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func decodeFile(l logging.Logger, cfg config.Config, path string, dryRun, printFrameRate, printNumRows bool) error {
	src := file.New(l)
	if err := src.Set(path, false); err != nil {
		return errors.Wrap(err, "could not configure file source")
	}
	if err := src.Start(); err != nil {
		return errors.Wrap(err, "could not start file source")
	}
	defer src.Stop()

	words, err := src.Words()
	if err != nil {
		return errors.Wrap(err, "could not read recording")
	}

	height := cfg.NumRows
	if height == 0 {
		height = maxRows
	}
	dec, err := camera.NewDecoder(height, cfg.Width(), words)
	if err != nil {
		return errors.Wrap(err, "could not create decoder")
	}
	dec.Strict = cfg.Strict
	dec.FastUnpack = cfg.FastUnpack

	var rawOut, pngOut *os.File
	if !dryRun {
		rawOut, err = os.Create(path + ".raw")
		if err != nil {
			return errors.Wrap(err, "could not create raw output file")
		}
		defer rawOut.Close()
	}

	start := time.Now()
	var nFrames int
	var pixels []uint16
	if cfg.ClearFrame {
		pixels = nil
	}
	for {
		var meta camera.Metadata
		err := dec.NextFrame(&pixels, &meta)
		if errors.Is(err, camera.ErrEndOfStream) {
			break
		}
		if err != nil {
			l.Warning("frame decode failed", "path", path, "frame", nFrames, "error", err)
			if cfg.Continue {
				continue
			}
			return errors.Wrap(err, "frame decode failed")
		}
		nFrames++

		if printNumRows {
			l.Info("decoded frame", "frame", nFrames, "rows", meta.NRows)
		}

		if dryRun {
			if cfg.ClearFrame {
				pixels = nil
			}
			continue
		}

		n := meta.NRows * cfg.Width()
		if n <= 0 || n > len(pixels) {
			n = len(pixels)
		}
		if err := writeRaw(rawOut, pixels[:n]); err != nil {
			return errors.Wrap(err, "could not write raw frame")
		}

		if cfg.ConvertBayer {
			if pngOut == nil {
				pngOut, err = os.Create(path + ".png")
				if err != nil {
					return errors.Wrap(err, "could not create png output file")
				}
				defer pngOut.Close()
			}
			rows := meta.NRows
			if rows <= 0 {
				rows = height
			}
			if err := writeBayerPreview(pngOut, pixels, cfg.Width(), rows); err != nil {
				return errors.Wrap(err, "could not write debayered preview")
			}
		}

		if cfg.ClearFrame {
			pixels = nil
		}
	}

	if printFrameRate {
		elapsed := time.Since(start).Seconds()
		rate := 0.0
		if elapsed > 0 {
			rate = float64(nFrames) / elapsed
		}
		l.Info("average decode frame rate", "path", path, "frames", nFrames, "framesPerSecond", rate)
	}
	return nil
}

// writeRaw appends pixels to w as little-endian uint16 samples.
func writeRaw(w *os.File, pixels []uint16) error {
	buf := make([]byte, 2*len(pixels))
	for i, v := range pixels {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}
	_, err := w.Write(buf)
	return err
}

// writeBayerPreview debayers pixels into RGB and writes it to w as a PNG
// image, replacing whatever w held before. Multi-frame files simply
// overwrite the single PNG each time, since
// PNG has no multi-frame container in the standard library; the raw output
// is the authoritative per-frame record.
func writeBayerPreview(w *os.File, pixels []uint16, width, height int) error {
	rgb := make([]uint8, 3*width*height)
	debayer.ToRGB(pixels, rgb, width, height)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[4*i+0] = rgb[3*i+0]
		img.Pix[4*i+1] = rgb[3*i+1]
		img.Pix[4*i+2] = rgb[3*i+2]
		img.Pix[4*i+3] = 0xFF
	}

	if _, err := w.Seek(0, 0); err != nil {
		return err
	}
	if err := w.Truncate(0); err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return err
	}
	return nil
}
