package cardimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"

	"github.com/wishmint/wishmint/pkg/qrcode"

	// Register decoders for the accepted upload formats.
	_ "image/gif"

	_ "golang.org/x/image/webp"
)

const (
	defaultMaxDimension = 900
	defaultQuality      = 90
	defaultTitle        = "Season's Greetings"

	// minFontSize is the floor for iterative shrinking of single-line fields.
	minFontSize = 10.0
)

var (
	inkBrown    = color.RGBA{R: 0x8B, G: 0x45, B: 0x13, A: 0xFF}
	paperWhite  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	strokeWhite = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xF2}
)

// Text carries the card's text fields.
type Text struct {
	SenderName    string
	RecipientName string
	Message       string
}

// Compositor renders greeting cards: a downscaled source image overlaid with
// a title, a word-wrapped message and sender/recipient labels, all drawn with
// a stroke-then-fill technique so the text stays legible over arbitrary
// image content. Safe for concurrent use once constructed.
type Compositor struct {
	maxDimension int
	quality      int
	title        string
	shareURL     string
	titleFont    *opentype.Font
	scriptFont   *opentype.Font
}

// Option configures the Compositor.
type Option func(*Compositor)

// WithMaxDimension caps the longer side of the composed card in pixels.
func WithMaxDimension(px int) Option {
	if px <= 0 {
		panic("WithMaxDimension: px must be > 0")
	}
	return func(c *Compositor) { c.maxDimension = px }
}

// WithQuality sets the JPEG export quality (1-100).
func WithQuality(q int) Option {
	if q < 1 || q > 100 {
		panic("WithQuality: quality must be within 1..100")
	}
	return func(c *Compositor) { c.quality = q }
}

// WithTitle overrides the card's title line.
func WithTitle(title string) Option {
	return func(c *Compositor) { c.title = title }
}

// WithShareQR stamps a QR code of the given URL into the card's lower-left
// corner so a printed card still links back to its online version.
func WithShareQR(url string) Option {
	return func(c *Compositor) { c.shareURL = url }
}

// NewCompositor parses the embedded typefaces and returns a ready renderer.
func NewCompositor(opts ...Option) (*Compositor, error) {
	titleFont, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	scriptFont, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}

	c := &Compositor{
		maxDimension: defaultMaxDimension,
		quality:      defaultQuality,
		title:        defaultTitle,
		titleFont:    titleFont,
		scriptFont:   scriptFont,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Decode reads an image from r, accepting JPEG, PNG, GIF and WebP.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return img, nil
}

// Compose renders the card. The source image is scaled uniformly so its
// longer side fits within the configured maximum without ever upscaling,
// which fixes the canvas dimensions and preserves the aspect ratio exactly.
func (c *Compositor) Compose(src image.Image, text Text) (image.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, ErrNilImage
	}

	scale := math.Min(
		float64(c.maxDimension)/float64(srcW),
		float64(c.maxDimension)/float64(srcH),
	)
	scale = math.Min(scale, 1)

	drawW := int(math.Round(float64(srcW) * scale))
	drawH := int(math.Round(float64(srcH) * scale))

	background := src
	if scale < 1 {
		background = imaging.Resize(src, drawW, drawH, imaging.Lanczos)
	}

	dc := gg.NewContext(drawW, drawH)
	dc.DrawImage(background, 0, 0)

	w := float64(drawW)
	h := float64(drawH)
	maxLineWidth := w - w*0.12

	// Title: colored fill over a light outline near the top.
	titleFace, err := c.fitFace(c.titleFont, h*0.09, dc, c.title, maxLineWidth)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(titleFace)
	c.strokeThenFill(dc, c.title, w/2, h*0.12, 0.5, strokeWhite, inkBrown, math.Max(2, math.Round(h*0.008)))

	// Message: greedy word wrap against the measured line width.
	messageFace, err := c.newFace(c.scriptFont, h*0.055)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(messageFace)

	lines := Wrap(func(s string) float64 {
		width, _ := dc.MeasureString(s)
		return width
	}, text.Message, maxLineWidth)

	lineHeight := math.Round(h * 0.065)
	y := h * 0.45
	thinStroke := math.Max(1.5, math.Round(h*0.004))
	for _, line := range lines {
		c.strokeThenFill(dc, line, w/2, y, 0.5, inkBrown, paperWhite, thinStroke)
		y += lineHeight
	}

	// Sender: right-anchored near the bottom edge.
	if text.SenderName != "" {
		label := "— " + text.SenderName
		senderFace, err := c.fitFace(c.scriptFont, h*0.05, dc, label, maxLineWidth)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(senderFace)
		c.strokeThenFill(dc, label, w-w*0.06, h-h*0.07, 1, inkBrown, paperWhite, thinStroke)
	}

	// Recipient: centered above the sender line.
	if text.RecipientName != "" {
		label := "To " + text.RecipientName
		recipientFace, err := c.fitFace(c.scriptFont, h*0.065, dc, label, maxLineWidth)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(recipientFace)
		c.strokeThenFill(dc, label, w/2, h-h*0.18, 0.5, inkBrown, paperWhite, thinStroke)
	}

	composed := dc.Image()

	if c.shareURL != "" {
		stamped, err := c.stampQR(composed, drawW, drawH)
		if err != nil {
			return nil, err
		}
		composed = stamped
	}

	return composed, nil
}

// ComposeJPEG renders the card and exports it as a compressed JPEG.
func (c *Compositor) ComposeJPEG(src image.Image, text Text) ([]byte, error) {
	composed, err := c.Compose(src, text)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, composed, &jpeg.Options{Quality: c.quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return buf.Bytes(), nil
}

// strokeThenFill draws s at (x, y) with the given horizontal anchor: first an
// outline built from offset copies in the stroke color, then the fill on top.
func (c *Compositor) strokeThenFill(dc *gg.Context, s string, x, y, ax float64, stroke, fill color.Color, width float64) {
	dc.SetColor(stroke)
	for dy := -width; dy <= width; dy += width {
		for dx := -width; dx <= width; dx += width {
			if dx == 0 && dy == 0 {
				continue
			}
			dc.DrawStringAnchored(s, x+dx, y+dy, ax, 0.5)
		}
	}
	dc.SetColor(fill)
	dc.DrawStringAnchored(s, x, y, ax, 0.5)
}

// newFace creates a font face at the given pixel size.
func (c *Compositor) newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	return face, nil
}

// fitFace returns a face for a single-line field, shrinking the size
// iteratively until the rendered string fits maxWidth or the floor is hit.
func (c *Compositor) fitFace(f *opentype.Font, size float64, dc *gg.Context, s string, maxWidth float64) (font.Face, error) {
	for size > minFontSize {
		face, err := c.newFace(f, size)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		if width, _ := dc.MeasureString(s); width <= maxWidth {
			return face, nil
		}
		size *= 0.9
	}
	return c.newFace(f, minFontSize)
}

// stampQR pastes a share-link QR badge into the lower-left corner.
func (c *Compositor) stampQR(composed image.Image, drawW, drawH int) (image.Image, error) {
	size := int(math.Round(float64(drawH) * 0.12))
	if size < 48 {
		size = 48
	}

	pngBytes, err := qrcode.Generate(c.shareURL, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQRFailed, err)
	}
	badge, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQRFailed, err)
	}

	margin := int(math.Round(float64(drawH) * 0.04))
	base := imaging.Clone(composed)
	return imaging.Paste(base, badge, image.Pt(margin, drawH-size-margin)), nil
}
