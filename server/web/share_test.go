package web

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
)

func TestEncodeQRCode(t *testing.T) {
	png, err := encodeQRCode("https://csat.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("encoded image is not a png")
	}
}

func TestShareQRCodeFailure(t *testing.T) {
	srv := newTestServer(&recordingRenderer{})
	// more data than the largest qr code version can hold
	srv.Cfg.Server.PublicURL = "https://csat.example.com/" + strings.Repeat("a", 8000)

	rec := serve(Routes(srv), http.MethodGet, "/share/qr.png")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct == "image/png" {
		t.Error("a failed qr code must not be sent as a png")
	}
	if bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body contains a partial png")
	}
}
