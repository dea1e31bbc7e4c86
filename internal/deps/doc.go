// Package deps checks that the external binaries gstcatalog shells out to are
// installed.
package deps
