// Package openapi derives form schemas from the backend's OpenAPI document
// so entity field layouts have a single source of truth. Request body object
// schemas map to forms.Schema; x-field-order, x-placeholder, and x-multiline
// extensions refine the derived layout.
package openapi
