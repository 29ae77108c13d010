// Package mapper converts upstream JSON records and client write requests into
// domain entities. Mapping never fails on bad field content: unparseable
// timestamps fall back to the current time and are reported as degradation
// events, and records that are not JSON objects are skipped.
package mapper
