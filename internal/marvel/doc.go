// Package marvel talks to the public Marvel comics API.
//
// Every upstream request carries a timestamp, the public key and an MD5
// digest of timestamp, private key and public key. QueryBuilder produces those
// signed URLs and Client fetches them, reducing each response to the
// data.results array or to an absent result when the upstream cannot answer.
package marvel
