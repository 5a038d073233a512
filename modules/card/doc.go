// Package card persists greeting cards and serves their public share pages.
//
// A card couples the composed image URL with the sender, recipient and
// message text. Saving validates the payload before any database write;
// reads are keyed by the card's UUID, which doubles as the shareable link
// path. The module also exposes image upload endpoints: a base64 data-URL
// upload and a server-side compositing endpoint producing the final card
// JPEG.
package card
