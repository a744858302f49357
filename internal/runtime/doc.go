// Package runtime runs external commands for the completion pipeline and
// maps package-manager names to the commands they accept.
package runtime
