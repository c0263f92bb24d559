package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Thumbnail bounding box for report photos.
const (
	ThumbnailWidth  = 200
	ThumbnailHeight = 200
)

// ImageProcessor turns uploaded photos into thumbnails.
type ImageProcessor struct {
	quality int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{quality: 80}
}

// Thumbnail decodes content and returns a JPEG that fits in maxWidth x maxHeight,
// preserving aspect ratio.
func (p *ImageProcessor) Thumbnail(content io.Reader, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
