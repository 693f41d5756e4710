// Package integration runs the stratech-booking-adapter binary against a fake
// Stratech backend and a local DynamoDB instance.
//
// The binary must be installed in $PATH (`go install .`) and DynamoDB Local
// must listen on localhost:4569.
//
// `go test` flags supported:
//
//	-debug
//
//	 Enable debug mode.
//
// Example: go test -v ./integration/... -debug
package integration
