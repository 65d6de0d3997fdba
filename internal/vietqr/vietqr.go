// Package vietqr builds image URLs for the VietQR rendering service.
//
// The service renders a scannable bank-transfer QR code from the account
// details and amount encoded in the URL; this package never calls it. The
// URL is handed to Discord as an embed image and fetched by the client.
package vietqr

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public VietQR image endpoint.
const DefaultBaseURL = "https://img.vietqr.io"

// Builder constructs payment QR image URLs for one bank account.
type Builder struct {
	BaseURL     string
	BankID      string
	AccountNo   string
	AccountName string
}

// ImageURL returns the QR image URL for a transfer of amount VND.
// memo becomes the transfer description (addInfo); when empty the
// parameter is left out entirely rather than sent blank.
func (b Builder) ImageURL(amount int64, memo string) string {
	base := b.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/image/%s-%s-compact.png?amount=%d", base, b.BankID, b.AccountNo, amount)
	if memo != "" {
		sb.WriteString("&addInfo=")
		sb.WriteString(escape(memo))
	}
	sb.WriteString("&accountName=")
	sb.WriteString(escape(b.AccountName))
	return sb.String()
}

// escape percent-encodes a query value. The VietQR service expects
// component encoding with %20 for spaces, not the form-encoded +.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
