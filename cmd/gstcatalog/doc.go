// Package main hosts the gstcatalog CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, builds the gst-inspect
// client, and drives the catalog engine. refresh captures a new dump into the
// snapshot database; list, show, and classes read the latest snapshot (or a
// dump passed with --dump-file); inspect asks the tool about one element
// directly. Output is a rounded table on a terminal and tab-separated text
// otherwise, with --json available where records are printed.
package main
