// Package notification emails a saved card's shareable link to its
// recipient. The email mirrors the card itself: image preview, the message
// and a call-to-action button opening the card page.
package notification
