package generate_pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// logoMaxPx keeps the embedded logo around 150dpi at its printed width.
const logoMaxPx = 360

var errNoLogo = errors.New("logo path not configured")

// loadLogo decodes any format imaging understands and re-encodes it as PNG,
// the format registered with the document.
func loadLogo(path string) ([]byte, error) {
	if path == "" {
		return nil, errNoLogo
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}

	if img.Bounds().Dx() > logoMaxPx {
		img = imaging.Resize(img, logoMaxPx, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}

	return buf.Bytes(), nil
}
