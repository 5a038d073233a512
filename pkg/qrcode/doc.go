// Package qrcode generates the shareable-link QR codes stamped onto composed
// cards and embedded in card pages.
//
// It is a thin wrapper around github.com/skip2/go-qrcode adding input
// validation, a default size, and a data-URI helper for HTML templates.
// Errors are package-level sentinels comparable with errors.Is.
package qrcode
