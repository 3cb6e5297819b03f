package io

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/ecopia-map/dem_animator/internal/pipeline"
)

// Receives rendered frames, possibly out of order and from several goroutines
type FrameSink interface {
	Put(index int, img image.Image) error
}

// Writes the collected frames as a single animation
type Exporter interface {
	Export(w io.Writer) error
}

// Collects frames into their index slot and encodes them as a looping GIF in index
// order. Frames are quantized to the web-safe palette when they are put, so the
// quantization runs on the rendering goroutines.
type GifExporter struct {
	mu     sync.Mutex
	frames []*image.Paletted
	delay  int
}

func NewGifExporter(frameCount int, delay int) *GifExporter {
	return &GifExporter{
		frames: make([]*image.Paletted, frameCount),
		delay:  delay,
	}
}

func (e *GifExporter) Put(index int, img image.Image) error {
	if img == nil {
		return errors.Wrapf(pipeline.ErrRenderExport, "frame %d: nil image", index)
	}
	if index < 0 || index >= len(e.frames) {
		return errors.Wrapf(pipeline.ErrRenderExport, "frame index %d out of range [0, %d)", index, len(e.frames))
	}

	paletted := quantize(img)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.frames[index] != nil {
		return errors.Wrapf(pipeline.ErrRenderExport, "frame %d already stored", index)
	}
	e.frames[index] = paletted
	return nil
}

func (e *GifExporter) Export(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.frames) == 0 {
		return errors.Wrap(pipeline.ErrRenderExport, "no frames to export")
	}
	anim := &gif.GIF{
		Image:     make([]*image.Paletted, len(e.frames)),
		Delay:     make([]int, len(e.frames)),
		LoopCount: 0,
	}
	for i, frame := range e.frames {
		if frame == nil {
			return errors.Wrapf(pipeline.ErrRenderExport, "frame %d was never rendered", i)
		}
		anim.Image[i] = frame
		anim.Delay[i] = e.delay
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return errors.Wrapf(pipeline.ErrRenderExport, "encoding gif: %v", err)
	}
	return nil
}

func quantize(img image.Image) *image.Paletted {
	if paletted, ok := img.(*image.Paletted); ok {
		return paletted
	}
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.WebSafe)
	draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)
	return paletted
}
