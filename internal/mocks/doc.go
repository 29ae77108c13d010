// Package mocks provides centralized mock implementations for testing.
//
// Each mock has a function field per interface method for custom behavior,
// canned defaults for the common case, and call tracking for verification:
//
//	upstream := &mocks.MockUpstream{
//	    Results: map[string]marvel.Results{"/v1/public/comics/1": {json.RawMessage(`{"id":1}`)}},
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
