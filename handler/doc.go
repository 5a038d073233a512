// Package handler defines the JSON response envelope shared by all API
// endpoints and the typed errors that map onto it.
//
// Every endpoint writes a Response of the shape
//
//	{"success": true, "message": "...", "data": {...}}
//	{"success": false, "error": {"code": "...", "message": "...", "details": {...}}}
//
// Service layers return *Error values carrying the HTTP status and envelope
// code; Fail classifies anything else as a generic 500 so internal error
// strings never reach clients.
package handler
