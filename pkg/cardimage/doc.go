// Package cardimage renders final greeting-card images.
//
// A card is a layered composition: the user's (optionally AI-stylized) photo
// scaled to fit a 900px cap without upscaling, a title, a greedily
// word-wrapped message, sender and recipient labels, and optionally a QR
// badge linking to the card's share page. All text uses a stroke-then-fill
// technique — a light or dark outline beneath the fill — so it stays
// readable regardless of image brightness.
//
// Rendering is pure CPU work with no I/O; a Compositor can be shared across
// requests.
package cardimage
