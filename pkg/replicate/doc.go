// Package replicate is a minimal client for the Replicate predictions API,
// covering the subset the card service needs: submit an image-to-image
// generation job against a fixed model, then poll its status on a fixed
// interval until it succeeds, fails, or the poll budget is exhausted.
//
// Output decoding tolerates both single-URL and URL-array model outputs.
// Errors are classified into sentinel values so callers can map them to
// distinct API error codes.
package replicate
