// Package imagecache downloads thumbnail images once and keeps them in a
// Store keyed by file name. Caching is best effort: every failure degrades to
// a nil location instead of failing the write that asked for the image.
package imagecache
