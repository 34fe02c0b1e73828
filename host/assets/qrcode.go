package assets

import (
	"fmt"
	"net"

	"github.com/skip2/go-qrcode"
)

// PageURL builds the address a browser should open for a listen address.
// An empty or unspecified host is replaced with publicHost, or localhost.
func PageURL(addr, publicHost string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	if publicHost != "" {
		host = publicHost
	} else if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/", nil
}

// TerminalQRCode renders text as a QR code made of block characters.
func TerminalQRCode(text string) (string, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return qr.ToSmallString(false), nil
}
