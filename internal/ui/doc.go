// Package ui implements the terminal user interface for imageinfo using Bubbletea.
package ui
