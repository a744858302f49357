// Package platform provides cross-platform file permission handling for
// generated files. On Windows permission bits are ignored.
package platform
