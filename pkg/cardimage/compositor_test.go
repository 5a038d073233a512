package cardimage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishmint/wishmint/pkg/cardimage"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0x80, A: 0xFF})
		}
	}
	return img
}

func testText() cardimage.Text {
	return cardimage.Text{
		SenderName:    "Alice",
		RecipientName: "Bob",
		Message:       "Wishing you a wonderful holiday season filled with joy and warmth",
	}
}

func TestNewCompositor(t *testing.T) {
	t.Parallel()

	c, err := cardimage.NewCompositor()
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestCompose(t *testing.T) {
	t.Parallel()

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		c, err := cardimage.NewCompositor()
		require.NoError(t, err)

		_, err = c.Compose(nil, testText())
		assert.ErrorIs(t, err, cardimage.ErrNilImage)
	})

	t.Run("large landscape image is capped at the max dimension", func(t *testing.T) {
		t.Parallel()

		c, err := cardimage.NewCompositor()
		require.NoError(t, err)

		out, err := c.Compose(testImage(1800, 1200), testText())
		require.NoError(t, err)

		bounds := out.Bounds()
		assert.Equal(t, 900, bounds.Dx())
		assert.Equal(t, 600, bounds.Dy())
	})

	t.Run("large portrait image is capped on its height", func(t *testing.T) {
		t.Parallel()

		c, err := cardimage.NewCompositor()
		require.NoError(t, err)

		out, err := c.Compose(testImage(1000, 2000), testText())
		require.NoError(t, err)

		bounds := out.Bounds()
		assert.Equal(t, 450, bounds.Dx())
		assert.Equal(t, 900, bounds.Dy())
	})

	t.Run("small image is never upscaled", func(t *testing.T) {
		t.Parallel()

		c, err := cardimage.NewCompositor()
		require.NoError(t, err)

		out, err := c.Compose(testImage(500, 500), testText())
		require.NoError(t, err)

		bounds := out.Bounds()
		assert.Equal(t, 500, bounds.Dx())
		assert.Equal(t, 500, bounds.Dy())
	})

	t.Run("custom max dimension", func(t *testing.T) {
		t.Parallel()

		c, err := cardimage.NewCompositor(cardimage.WithMaxDimension(300))
		require.NoError(t, err)

		out, err := c.Compose(testImage(600, 400), testText())
		require.NoError(t, err)

		bounds := out.Bounds()
		assert.Equal(t, 300, bounds.Dx())
		assert.Equal(t, 200, bounds.Dy())
	})

	t.Run("empty text fields still render", func(t *testing.T) {
		t.Parallel()

		c, err := cardimage.NewCompositor()
		require.NoError(t, err)

		out, err := c.Compose(testImage(400, 400), cardimage.Text{})
		require.NoError(t, err)
		assert.Equal(t, 400, out.Bounds().Dx())
	})

	t.Run("share QR keeps dimensions intact", func(t *testing.T) {
		t.Parallel()

		c, err := cardimage.NewCompositor(
			cardimage.WithShareQR("https://cards.example.com/card/abc"),
		)
		require.NoError(t, err)

		out, err := c.Compose(testImage(800, 600), testText())
		require.NoError(t, err)
		assert.Equal(t, 800, out.Bounds().Dx())
		assert.Equal(t, 600, out.Bounds().Dy())
	})
}

func TestComposeJPEG(t *testing.T) {
	t.Parallel()

	c, err := cardimage.NewCompositor(cardimage.WithQuality(80))
	require.NoError(t, err)

	data, err := c.ComposeJPEG(testImage(1200, 900), testText())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 900, decoded.Bounds().Dx())
	assert.Equal(t, 675, decoded.Bounds().Dy())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("decodes PNG", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, testImage(64, 48)))

		img, err := cardimage.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 64, img.Bounds().Dx())
	})

	t.Run("decodes JPEG", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, testImage(64, 48), nil))

		img, err := cardimage.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 48, img.Bounds().Dy())
	})

	t.Run("rejects non-image bytes", func(t *testing.T) {
		t.Parallel()

		_, err := cardimage.Decode(bytes.NewReader([]byte("definitely not an image")))
		assert.ErrorIs(t, err, cardimage.ErrImageDecode)
	})
}
