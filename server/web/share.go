package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/topi314/csat-counter/internal/xio"
)

// ShareQRCode renders a PNG QR code pointing at the public URL of the site.
// The image is encoded before anything is written, so a failure still ends
// up as a 500.
func (h *handler) ShareQRCode(w http.ResponseWriter, r *http.Request) error {
	png, err := encodeQRCode(h.Cfg.Server.PublicURL)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	_, _ = w.Write(png)
	return nil
}

func encodeQRCode(content string) ([]byte, error) {
	qr, err := qrcode.New(content)
	if err != nil {
		return nil, fmt.Errorf("failed to create qrcode: %w", err)
	}

	buf := &bytes.Buffer{}
	qrW := standard.NewWithWriter(xio.NewWriteCloser(buf),
		standard.WithBgTransparent(),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err = qr.Save(qrW); err != nil {
		return nil, fmt.Errorf("failed to save qrcode: %w", err)
	}
	_ = qrW.Close()

	return buf.Bytes(), nil
}
