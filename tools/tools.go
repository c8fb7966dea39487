//go:build tools

// Package tools lists the development tools the portal relies on. They run through
// `go run` or `go install` and are kept out of the module graph.
package tools

// Mock generation:
//
//	go generate ./internal/mocks
//
// runs go.uber.org/mock/mockgen@v0.6.0, matching the go.uber.org/mock version in go.mod.
//
// Live reload while editing templates and handlers:
//
//	go install github.com/air-verse/air@v1.63.0
//	air --build.cmd "go build -o ./tmp/portal ./cmd/portal" --build.bin ./tmp/portal
