// Package template defines the rendering engine contract shared by the page
// renderers. The gotemplate subpackage provides the default pongo2-backed
// implementation.
package template
