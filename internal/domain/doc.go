// Package domain defines the catalog entities (characters and comics), the
// write requests that populate them, and the errors shared across layers.
package domain
