// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package texture implements 2D texture resources.
package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gviegas/visual/object"
	"github.com/gviegas/visual/server"
)

// Changed is the signal that a Texture emits when
// its image changes.
const Changed = "changed"

// Flag controls how images are uploaded.
type Flag int

// Flags.
const (
	// Resize images whose dimensions are not powers
	// of two up to the next power of two.
	FlagPowerOfTwo Flag = 1 << iota
)

// ErrEmpty means that an image has no pixels.
var ErrEmpty = errors.New("texture: empty image")

// Texture is a texture resource.
type Texture struct {
	object.Object

	srv   server.ResourceServer
	rid   server.RID
	flags Flag
	w, h  int

	// Name for the texture.
	// It is not used by texture code.
	Name string
}

// New creates a new texture from img.
func New(srv server.ResourceServer, img image.Image, flags Flag) (*Texture, error) {
	t := &Texture{srv: srv, flags: flags}
	rgba, err := t.convert(img)
	if err != nil {
		return nil, err
	}
	t.rid = srv.TextureCreate()
	t.upload(rgba)
	return t, nil
}

// Decode decodes an image from r and creates a new
// texture from it.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func Decode(srv server.ResourceServer, r io.Reader, flags Flag) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	return New(srv, img, flags)
}

// Load is like Decode but reads from the named file.
func Load(srv server.ResourceServer, name string, flags Flag) (*Texture, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer f.Close()
	t, err := Decode(srv, f, flags)
	if err == nil {
		t.Name = name
	}
	return t, err
}

// RID returns the server texture of t.
func (t *Texture) RID() server.RID { return t.rid }

// Size returns the dimensions of t's image after
// conversion.
func (t *Texture) Size() (width, height int) { return t.w, t.h }

// Flags returns the flags of t.
func (t *Texture) Flags() Flag { return t.flags }

// SetImage replaces the image of t and emits Changed.
func (t *Texture) SetImage(img image.Image) error {
	rgba, err := t.convert(img)
	if err != nil {
		return err
	}
	t.upload(rgba)
	t.Emit(Changed)
	return nil
}

// Free releases the server texture.
// Calling Free more than once has no effect.
func (t *Texture) Free() {
	if t.rid.IsValid() {
		t.srv.Free(t.rid)
		t.rid = server.Nil
	}
}

func (t *Texture) upload(rgba *image.RGBA) {
	sz := rgba.Bounds().Size()
	if sz.X != t.w || sz.Y != t.h {
		t.srv.TextureAllocate(t.rid, sz.X, sz.Y)
		t.w, t.h = sz.X, sz.Y
	}
	t.srv.TextureSetData(t.rid, rgba)
}

// convert returns img as an *image.RGBA whose
// bounds start at the origin.
func (t *Texture) convert(img image.Image) (*image.RGBA, error) {
	if img == nil {
		return nil, ErrEmpty
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}
	if t.flags&FlagPowerOfTwo != 0 {
		w, h := ceilPow2(b.Dx()), ceilPow2(b.Dy())
		if w != b.Dx() || h != b.Dy() {
			return transform.Resize(img, w, h, transform.Linear), nil
		}
	}
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba, nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// ceilPow2 returns the smallest power of two that is
// greater than or equal to n.
func ceilPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
