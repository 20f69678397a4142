package asset

import (
	"bytes"
	"strconv"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/internal/binary"
)

// Thumbnail formats.
const (
	ThumbnailPNG  = "png"
	ThumbnailJPEG = "jpeg"
	ThumbnailRaw  = "raw"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// Thumbnail is one entry of the thumbnail table with its image bytes.
type Thumbnail struct {
	ClassName  string `json:"className"`
	ObjectPath string `json:"objectPath"`
	Format     string `json:"format"`
	Data       []byte `json:"-"`
	FileOffset int32  `json:"fileOffset"`
	Width      int32  `json:"width"`
	Height     int32  `json:"height"`
	Size       int    `json:"size"`
}

// Extension returns a file extension for the image format.
func (t *Thumbnail) Extension() string {
	switch t.Format {
	case ThumbnailPNG:
		return ".png"
	case ThumbnailJPEG:
		return ".jpg"
	default:
		return ".bin"
	}
}

// ReadThumbnails reads the thumbnail table at header.ThumbnailTableOffset.
// A zero offset means the package has no thumbnails.
func ReadThumbnails(data []byte, h *Header) ([]Thumbnail, error) {
	if h.ThumbnailTableOffset <= 0 {
		return nil, nil
	}
	c := binary.NewCursor(data)
	if err := c.Seek(int64(h.ThumbnailTableOffset)); err != nil {
		return nil, errors.At(errors.PhaseThumbnails, err, "thumbnails")
	}

	count, err := c.ReadI32()
	if err != nil {
		return nil, errors.At(errors.PhaseThumbnails, err, "thumbnails")
	}
	// Each index record takes at least 12 bytes.
	if count < 0 || int64(count)*12 > c.Remaining() {
		return nil, errors.InvalidData(errors.PhaseThumbnails, []string{"thumbnails"},
			"thumbnail count "+strconv.Itoa(int(count))+" does not fit the file")
	}

	thumbs := make([]Thumbnail, 0, count)
	for i := int32(0); i < count; i++ {
		var t Thumbnail
		if t.ClassName, err = c.ReadFString(); err == nil {
			if t.ObjectPath, err = c.ReadFString(); err == nil {
				t.FileOffset, err = c.ReadI32()
			}
		}
		if err != nil {
			return nil, errors.At(errors.PhaseThumbnails, err, "thumbnails", strconv.Itoa(int(i)))
		}
		thumbs = append(thumbs, t)
	}

	for i := range thumbs {
		if err := readThumbnailImage(data, &thumbs[i]); err != nil {
			return nil, errors.At(errors.PhaseThumbnails, err, "thumbnails", strconv.Itoa(i))
		}
	}
	return thumbs, nil
}

func readThumbnailImage(data []byte, t *Thumbnail) error {
	c := binary.NewCursor(data)
	if err := c.Seek(int64(t.FileOffset)); err != nil {
		return err
	}

	var err error
	if t.Width, err = c.ReadI32(); err != nil {
		return err
	}
	if t.Height, err = c.ReadI32(); err != nil {
		return err
	}
	// A negative height flags JPEG data.
	jpeg := t.Height < 0
	if jpeg {
		t.Height = -t.Height
	}

	n, err := c.ReadI32()
	if err != nil {
		return err
	}
	if t.Data, err = c.ReadBytes(int64(n)); err != nil {
		return err
	}
	t.Size = len(t.Data)

	switch {
	case bytes.HasPrefix(t.Data, pngMagic):
		t.Format = ThumbnailPNG
	case jpeg || bytes.HasPrefix(t.Data, jpegMagic):
		t.Format = ThumbnailJPEG
	default:
		t.Format = ThumbnailRaw
	}
	return nil
}
