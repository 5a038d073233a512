// Package generation implements the AI stylization pipeline: a rate-limited
// endpoint that accepts a photo upload, stores the original, submits it to
// the image provider, polls until the prediction finishes and returns the
// stylized image URL together with the caller's remaining allowance.
//
// Quota accounting is per client address over a trailing window and fails
// closed: if the allowance cannot be verified, the request is rejected. An
// event is recorded only after a successful generation, so failed provider
// calls never consume quota.
package generation
