package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishmint/wishmint/pkg/email"
)

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		id, err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "recipient@example.com",
			Subject:  "A card for you",
			BodyHTML: "<p>open your card</p>",
			Tag:      "card-share",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var htmlFile, jsonFile string
		for _, e := range entries {
			switch filepath.Ext(e.Name()) {
			case ".html":
				htmlFile = filepath.Join(dir, e.Name())
			case ".json":
				jsonFile = filepath.Join(dir, e.Name())
			}
		}
		require.NotEmpty(t, htmlFile)
		require.NotEmpty(t, jsonFile)

		html, err := os.ReadFile(htmlFile)
		require.NoError(t, err)
		assert.Contains(t, string(html), "open your card")

		raw, err := os.ReadFile(jsonFile)
		require.NoError(t, err)

		var meta map[string]any
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, id, meta["message_id"])
		assert.Equal(t, "recipient@example.com", meta["send_to"])
		assert.Equal(t, "card-share", meta["tag"])

		assert.True(t, strings.Contains(filepath.Base(htmlFile), "card-share"))
	})

	t.Run("rejects invalid params before writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		_, err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo: "broken",
		})
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		entries, err2 := os.ReadDir(dir)
		require.NoError(t, err2)
		assert.Empty(t, entries)
	})
}
