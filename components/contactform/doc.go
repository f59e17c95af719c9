// Package contactform mounts the contact form on a net/http mux.
//
// GET renders an empty form, POST validates a form-urlencoded submission and
// re-renders it with annotations or the submitted summary, and the live
// endpoint upgrades to a websocket that validates every keystroke against a
// per-connection form state.
package contactform
