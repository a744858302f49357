// Package source resolves template references into loadable templates.
//
// A reference is one of
//
//	webpack                      a template embedded in the binary
//	./path/to/template           a local directory
//	owner/repo                   a repository below the configured base URL
//	https://host/owner/repo.git  any git URL
//
// Git templates are shallow-cloned into a cache directory. Clones are
// atomic: a .tmp directory is filled first and renamed on success. A
// freshness marker records the last successful fetch; stale caches are
// refreshed unless the resolver runs offline.
package source
