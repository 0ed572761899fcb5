package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"application/pdf": "pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
		"image/jpeg":              "jpg",
		"image/png":               "png",
		"image/webp":              "webp",
		"video/mp4":               "mp4",
		"audio/mpeg":              "mp3",
		"audio/mp3":               "mp3",
		"IMAGE/PNG; charset=utf8": "png",
		"application/x-unknown":   "bin",
		"":                        "bin",
	}
	for contentType, want := range tests {
		assert.Equal(t, want, ExtensionFor(contentType), contentType)
	}
}

func TestMimeTypeFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", MimeTypeFor("jpg"))
	assert.Equal(t, "image/jpeg", MimeTypeFor(".JPEG"))
	assert.Equal(t, "audio/mpeg", MimeTypeFor("mp3"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", MimeTypeFor("xlsx"))
	assert.Equal(t, DefaultMimeType, MimeTypeFor("exe"))
}
