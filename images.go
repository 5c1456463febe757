package siteapi

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	_ "golang.org/x/image/webp"
)

// imageFormats maps allowed MIME types to the file extension used for the
// stored blob and the format name the decoder must report.
var imageFormats = map[string]struct{ ext, format string }{
	"image/jpeg": {"jpg", "jpeg"},
	"image/png":  {"png", "png"},
	"image/webp": {"webp", "webp"},
	"image/gif":  {"gif", "gif"},
}

// UploadResult is the success payload of the upload endpoint.
type UploadResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

func (a *App) handleUploadImage(c echo.Context) error {
	var req UploadRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	mimeType, data, err := parseDataURL(req.DataURL)
	if err != nil {
		return err
	}
	ft, ok := imageFormats[mimeType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType)
	}
	// The declared type must match what the bytes actually decode as; a
	// PNG labelled image/jpeg is a malformed payload, not a JPEG.
	format, err := sniffImageFormat(data)
	if err != nil || format != ft.format {
		return fmt.Errorf("%w: payload is not %s", ErrMalformedDataURL, mimeType)
	}

	name := fmt.Sprintf("%s-%s.%s", sanitizeBaseName(req.FileName), uuid.NewString(), ft.ext)
	if err := a.blobs.Put(name, data); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	a.log.Info().Str("file", name).Int("bytes", len(data)).Msg("image uploaded")
	return c.JSON(http.StatusOK, UploadResult{Success: true, URL: "/uploads/" + name})
}

// parseDataURL splits a "data:<mime>;base64,<payload>" string into its MIME
// type and decoded bytes.
func parseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrMalformedDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrMalformedDataURL
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mimeType == "" {
		return "", nil, ErrMalformedDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrMalformedDataURL, "invalid base64 payload")
	}
	return mimeType, data, nil
}

// sniffImageFormat decodes just the image header and returns the registered
// format name (jpeg, png, gif, webp).
func sniffImageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	return format, err
}

// sanitizeBaseName strips the extension from a filename hint and replaces
// every character outside [A-Za-z0-9_-] with '-'.
func sanitizeBaseName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "image"
	}
	return out
}
