package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	chaiwebp "github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("photo must be png, jpeg or webp")
	ErrUndecodable       = errors.New("unable to decode photo")
	ErrTooLarge          = errors.New("photo too large")
)

const (
	MaxUploadBytes = 8 << 20
	PhotoSize      = 512
	ContentType    = "image/webp"
)

// Processor turns an uploaded photo into a square WebP thumbnail.
type Processor struct {
	Size    int
	Quality float32
}

func NewProcessor() *Processor {
	return &Processor{Size: PhotoSize, Quality: 78}
}

func (p *Processor) Process(raw []byte) ([]byte, error) {
	if len(raw) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	img, err := decode(raw)
	if err != nil {
		return nil, err
	}

	square := centerCrop(img)

	resized := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), square, square.Bounds(), xdraw.Over, nil)

	var out bytes.Buffer
	if err := chaiwebp.Encode(&out, resized, &chaiwebp.Options{Quality: p.Quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decode(raw []byte) (image.Image, error) {
	switch http.DetectContentType(raw) {
	case "image/png", "image/jpeg":
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, ErrUndecodable
		}
		return img, nil
	case "image/webp":
		img, err := webp.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, ErrUndecodable
		}
		return img, nil
	}
	return nil, ErrUnsupportedFormat
}

func centerCrop(img image.Image) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())

	x := b.Min.X + (b.Dx()-side)/2
	y := b.Min.Y + (b.Dy()-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Draw(dst, dst.Bounds(), img, image.Point{X: x, Y: y}, xdraw.Src)
	return dst
}
