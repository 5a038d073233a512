// Package email dispatches transactional HTML emails.
//
// Production uses the Postmark API; local development can swap in DevSender,
// which writes each email to disk as an HTML file plus a JSON metadata
// sidecar. Both implement EmailSender and return a message ID on success.
package email
