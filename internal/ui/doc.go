// Package ui contains the interactive picker shown when a processing call
// answers with multiple selectable media items. It is a single Bubble Tea
// model; everything else tidepool prints goes straight to stdout/stderr.
package ui
