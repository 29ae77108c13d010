// Package api implements the REST surface of the catalog: list, get and
// related reads proxied to the upstream API, and create, replace and delete
// writes against the local store. Errors are mapped to status codes and
// sanitized messages here; the service layer never sees HTTP.
package api
