package main

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// preprocessImage decodes an encoded image (PNG, JPEG, BMP, ...) and returns
// packed RGB bytes resized to exactly width x height. The image is stretched
// to fit; aspect ratio is not preserved. Grayscale, indexed and RGBA sources
// all come out as 3-channel RGB, with alpha dropped.
func preprocessImage(data []byte, width, height int) ([]byte, error) {
	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()
	if img.Empty() {
		return nil, fmt.Errorf("decode image: unrecognized format")
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(img, &rgb, gocv.ColorBGRToRGB)
	gocv.Resize(rgb, &rgb, image.Pt(width, height), 0, 0, gocv.InterpolationLanczos4)

	v, err := rgb.DataPtrUint8()
	if err != nil {
		return nil, err
	}
	pixels := make([]byte, len(v))
	copy(pixels, v)
	return pixels, nil
}
