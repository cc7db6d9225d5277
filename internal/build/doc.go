// Package build runs one full site build: wipe the output directory, scan
// the content tree, render every document and write the site index.
//
// All execution paths (the build command, watch mode, tests) route through
// BuildService. There is no incremental state; every run regenerates the
// whole output tree.
package build
