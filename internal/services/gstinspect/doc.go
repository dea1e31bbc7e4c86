// Package gstinspect runs the gst-inspect-1.0 binary and returns its raw report
// text.
//
// The client only executes the tool and classifies failures (missing binary,
// timeout, non-zero exit, empty output) using the services error markers.
// Turning the text into element records is the inspect package's job.
package gstinspect
