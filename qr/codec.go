// Package qr - QR code rendering of herb records and resolution of scanned QR text
package qr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alwitt/herbtrace/models"
	"github.com/skip2/go-qrcode"
)

// DefaultImageSize default PNG edge length in pixels
const DefaultImageSize = 256

// DataURIPrefix prefix of a base64 PNG data URI
const DataURIPrefix = "data:image/png;base64,"

// byteModeCapacity largest byte mode payload a version 40 symbol holds at each recovery level
var byteModeCapacity = map[qrcode.RecoveryLevel]int{
	qrcode.Low:     2953,
	qrcode.Medium:  2331,
	qrcode.High:    1663,
	qrcode.Highest: 1273,
}

/*
Codec renders herb records as QR codes.

When PublicBaseURL is set the QR code carries the URL of the herb's public page, otherwise it
carries the herb record itself as JSON.
*/
type Codec struct {
	// PublicBaseURL base URL of the public product pages. Optional.
	PublicBaseURL string
	// Level error recovery level
	Level qrcode.RecoveryLevel
	// Size PNG edge length in pixels
	Size int
}

/*
NewCodec define a new QR codec with the default recovery level and image size

	@param publicBaseURL string - base URL of the public product pages; empty to embed JSON
	@return new codec
*/
func NewCodec(publicBaseURL string) Codec {
	return Codec{
		PublicBaseURL: strings.TrimSpace(publicBaseURL),
		Level:         qrcode.Medium,
		Size:          DefaultImageSize,
	}
}

/*
Payload the text a herb's QR code carries

	@param herb models.Herb - the herb
	@return QR payload
*/
func (c Codec) Payload(herb models.Herb) (string, error) {
	if c.PublicBaseURL != "" {
		return fmt.Sprintf("%s/p/%s", strings.TrimRight(c.PublicBaseURL, "/"), herb.ID), nil
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(herb); err != nil {
		return "", fmt.Errorf(
			"unable to serialize herb '%s' [%w]", herb.ID, errors.Join(models.ErrEncoding, err),
		)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

/*
Encode build the QR code of a herb

	@param herb models.Herb - the herb
	@return QR code
*/
func (c Codec) Encode(herb models.Herb) (*qrcode.QRCode, error) {
	payload, err := c.Payload(herb)
	if err != nil {
		return nil, err
	}
	if limit, ok := byteModeCapacity[c.Level]; ok && len(payload) > limit {
		return nil, fmt.Errorf(
			"QR payload of herb '%s' is %d bytes, exceeds limit %d [%w]",
			herb.ID,
			len(payload),
			limit,
			models.ErrEncoding,
		)
	}
	code, err := qrcode.New(payload, c.Level)
	if err != nil {
		return nil, fmt.Errorf(
			"unable to encode QR of herb '%s' [%w]", herb.ID, errors.Join(models.ErrEncoding, err),
		)
	}
	return code, nil
}

/*
PNG render a herb's QR code as PNG image bytes

	@param herb models.Herb - the herb
	@return PNG bytes
*/
func (c Codec) PNG(herb models.Herb) ([]byte, error) {
	code, err := c.Encode(herb)
	if err != nil {
		return nil, err
	}
	size := c.Size
	if size <= 0 {
		size = DefaultImageSize
	}
	image, err := code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf(
			"unable to render QR of herb '%s' [%w]", herb.ID, errors.Join(models.ErrEncoding, err),
		)
	}
	return image, nil
}

/*
DataURI render a herb's QR code as a base64 PNG data URI

	@param herb models.Herb - the herb
	@return `data:image/png;base64,...`
*/
func (c Codec) DataURI(herb models.Herb) (string, error) {
	image, err := c.PNG(herb)
	if err != nil {
		return "", err
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(image), nil
}
