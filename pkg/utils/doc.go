// Package utils provides small shared helpers for the simple-actas system.
//
// All functions are stateless and safe for concurrent use.
package utils
