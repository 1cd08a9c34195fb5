package media

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Image format decoders for the stdlib probe path
	_ "image/jpeg"
	_ "image/png"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP format support
)

// ErrMetadataRead indicates an image whose dimensions could not be
// determined. Callers log it and continue with zero dimensions.
var ErrMetadataRead = errors.New("could not read image metadata")

// Dimensions holds probed image dimensions after orientation
// correction: Width and Height are what a viewer actually sees.
type Dimensions struct {
	Width       int
	Height      int
	Orientation int
}

// Portrait reports whether the corrected image is taller than wide.
func (d Dimensions) Portrait() bool {
	return d.Height > d.Width
}

// Probe returns the display dimensions of the image at path. EXIF
// orientation values 5-8 encode a 90° or 270° rotation, so raw width
// and height are swapped before being reported.
//
// The probe tries libvips first, then a stdlib header decode paired
// with an EXIF scan, and finally a full decode via imaging (which
// applies the rotation itself).
func Probe(path string) (Dimensions, error) {
	if dims, err := probeWithVips(path); err == nil {
		return dims, nil
	}

	if dims, err := probeWithDecodeConfig(path); err == nil {
		return dims, nil
	}

	// Last resort: decode the whole image. AutoOrientation means the
	// bounds are already rotated.
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %s: %v", ErrMetadataRead, path, err)
	}
	bounds := img.Bounds()
	return Dimensions{Width: bounds.Dx(), Height: bounds.Dy(), Orientation: 1}, nil
}

func probeWithVips(path string) (Dimensions, error) {
	if !vipsInitialized {
		return Dimensions{}, errors.New("vips not initialized")
	}

	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return Dimensions{}, err
	}
	defer ref.Close()

	return correctOrientation(ref.Width(), ref.Height(), ref.Orientation()), nil
}

func probeWithDecodeConfig(path string) (Dimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return Dimensions{}, err
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return Dimensions{}, err
	}

	return correctOrientation(config.Width, config.Height, exifOrientation(path)), nil
}

// exifOrientation reads the EXIF orientation tag, returning 0 when the
// file carries no usable EXIF block (derived webp files never do).
func exifOrientation(path string) int {
	file, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return orientation
}

// correctOrientation swaps raw width and height for the rotate-90/270
// EXIF orientations (5-8) so the reported dimensions match the display.
func correctOrientation(width, height, orientation int) Dimensions {
	if orientation >= 5 {
		width, height = height, width
	}
	return Dimensions{Width: width, Height: height, Orientation: orientation}
}
