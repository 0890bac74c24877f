// Package cli implements the nucdash command line: serve runs the dashboard server,
// prepare writes the prepared views, and render writes every chart image.
package cli
