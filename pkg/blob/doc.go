// Package blob stores binary image payloads in S3-compatible object storage
// and resolves their public URLs.
//
// Uploads are write-once: a conditional PutObject (If-None-Match: *) refuses
// to overwrite an existing object, so generated keys never clobber earlier
// uploads. Keys are built from a millisecond timestamp plus a random suffix
// with an extension derived from the image content type.
package blob
