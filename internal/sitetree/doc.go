// Package sitetree scans a source directory into an in-memory content tree.
//
// The tree mirrors the filesystem: a Folder owns its children in listing
// order and a File carries the decoded UTF-8 text of the file. Tooling
// directories and loose files are dropped at the root only; below the root
// every directory and file is content.
package sitetree
