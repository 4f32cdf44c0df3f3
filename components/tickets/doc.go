// Package tickets packages the ticket surfaces (schema, form, card, list)
// and the processing watch flow behind one component with functional options.
// Copy overlays loaded from YAML let deployments relabel fields and dialogs
// without forking the component.
package tickets
