package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/aaronzipp/pig-dice/internal/game"
)

// HandleQRCode serves a PNG QR code linking to the table, for opening it on another screen
func (ctx *Context) HandleQRCode(w http.ResponseWriter, r *http.Request) {
	table, ok := ctx.lookupTable(w, r)
	if !ok {
		return
	}

	url := strings.TrimRight(ctx.Config.PublicURL, "/") + game.TablePath(table.Code)
	png, err := qrcode.Encode(url, qrcode.Medium, ctx.Config.QRSize)
	if err != nil {
		log.Printf("HandleQRCode: encode %s: %v", url, err)
		http.Error(w, "Could not render QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}
