package storage

import (
	"strings"
)

const (
	// DefaultExtension is used for content types missing from the table
	DefaultExtension = "bin"
	// DefaultMimeType is served for extensions missing from the table
	DefaultMimeType = "application/octet-stream"
)

var extensionByMime = map[string]string{
	"application/pdf": "pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   "docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "pptx",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"video/mp4":  "mp4",
	"audio/mpeg": "mp3",
	"audio/mp3":  "mp3",
}

var mimeByExtension = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"mp4":  "video/mp4",
	"mp3":  "audio/mpeg",
}

// ExtensionFor maps a content type to a file extension without the dot
func ExtensionFor(contentType string) string {
	if ext, ok := extensionByMime[normalizeMime(contentType)]; ok {
		return ext
	}
	return DefaultExtension
}

// MimeTypeFor maps a file extension, with or without the dot, to a content type
func MimeTypeFor(ext string) string {
	if m, ok := mimeByExtension[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return m
	}
	return DefaultMimeType
}

func normalizeMime(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
