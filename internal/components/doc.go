// Package components holds the Go-native page behaviors mounted in the
// render context: the navbar link disabler and the timestamp fader.
package components
