// Package entity defines data structures shared by the web layer of the
// intern portal.
package entity

// Msg represents a standard API response message with success status, message
// text, and optional data object.
type Msg struct {
	Success bool   `json:"success"` // Indicates if the operation was successful
	Msg     string `json:"msg"`     // Response message text
	Obj     any    `json:"obj"`     // Optional data object
}
