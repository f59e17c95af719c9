// Package form holds the live state of one contact form instance: the
// current field values, which fields have been validated, and the snapshot
// taken by the last successful submission.
//
// A State is owned by a single caller (one HTTP request, one websocket
// connection, one terminal session) and is not safe for concurrent use.
package form
