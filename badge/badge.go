// Package badge renders the printable visitor pass of a completed check-in.
package badge

import (
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/skip2/go-qrcode"

	"visentry-backend/capture"
	"visentry-backend/checkin"
)

// QRSize is the default edge length of the badge QR code in pixels.
const QRSize = 256

var ErrNotAccepted = errors.New("visitor has not accepted the NDA")

// Badge is what gets printed on the visitor pass.
type Badge struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Company      string   `json:"company"`
	Host         string   `json:"host"`
	PlaceToVisit string   `json:"placeToVisit,omitempty"`
	Date         string   `json:"date"`
	Photograph   *string  `json:"photograph"`
	Members      []string `json:"members"`
}

// New builds the badge of a check-in whose NDA was accepted.
func New(st checkin.State) (Badge, error) {
	if !st.NDA.Accepted || st.ID == nil {
		return Badge{}, ErrNotAccepted
	}
	b := Badge{
		ID:         *st.ID,
		Name:       st.BasicDetails.FullName(),
		Company:    st.CompanyDetails.CompanyName,
		Host:       st.CompanyDetails.Host.Name,
		Date:       st.NDA.Date,
		Photograph: st.Photograph,
		Members:    make([]string, 0, len(st.Members)),
	}
	if st.PlaceToVisit != nil {
		b.PlaceToVisit = string(*st.PlaceToVisit)
	}
	for _, m := range st.Members {
		b.Members = append(b.Members, m.BasicDetails.FullName())
	}
	return b, nil
}

// QRCode encodes the visitor id as a PNG.
func QRCode(b Badge, size int) ([]byte, error) {
	if size <= 0 {
		size = QRSize
	}
	png, err := qrcode.Encode(b.ID, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode badge qr: %w", err)
	}
	return png, nil
}

var page = template.Must(template.New("badge").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Visitor {{.ID}}</title>
<style>
body { font-family: sans-serif; }
.badge { width: 320px; border: 2px solid #4b3f4a; border-radius: 12px; padding: 16px; text-align: center; }
.badge h1 { letter-spacing: 4px; margin: 0 0 12px; }
.badge img.photo { width: 128px; height: 128px; object-fit: cover; border-radius: 50%; }
.muted { color: #8d7c8b; }
</style>
</head>
<body onload="window.print()">
<div class="badge" id="badge-to-print">
<h1>VISITOR</h1>
{{if .Photo}}<img class="photo" src="{{.Photo}}" alt="Visitor photograph">{{end}}
<h2>{{.Name}}</h2>
<p>{{.Company}}</p>
<p><span class="muted">Host:</span> {{.Host}}</p>
{{if .PlaceToVisit}}<p><span class="muted">Area:</span> {{.PlaceToVisit}}</p>{{end}}
<p><span class="muted">Date:</span> {{.Date}}</p>
{{if .Members}}<p><span class="muted">Accompanied by:</span> {{range $i, $m := .Members}}{{if $i}}, {{end}}{{$m}}{{end}}</p>{{end}}
<img src="{{.QR}}" alt="{{.ID}}" width="128" height="128">
<p class="muted">{{.ID}}</p>
</div>
</body>
</html>
`))

type pageData struct {
	Badge
	Photo template.URL
	QR    template.URL
}

// RenderHTML writes a self-contained printable page for b.
func RenderHTML(w io.Writer, b Badge) error {
	png, err := QRCode(b, QRSize)
	if err != nil {
		return err
	}
	data := pageData{Badge: b, QR: template.URL(capture.DataURI("image/png", png))}
	if b.Photograph != nil && capture.IsImage(*b.Photograph) {
		data.Photo = template.URL(*b.Photograph)
	}
	return page.Execute(w, data)
}
