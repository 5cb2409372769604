package render

import (
	"encoding/base64"
	"html/template"

	"foodie-dashboard/dashboard-svc/internal/dom"

	"github.com/skip2/go-qrcode"
)

// ShareCode renders a QR code pointing at url, embedded the same way chart
// images are.
func (r *Renderer) ShareCode(url string, size int) (dom.Fragment, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return r.execute("share-code", struct {
		Src  template.URL
		Size int
		Alt  string
	}{
		Src:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		Size: size,
		Alt:  "Share " + url,
	})
}
