//go:build tools

// Package tools documents the development tools used with the dashboard.
// They are run through `go run` or installed with `go install` and are not
// tracked in go.mod.
package tools

// mockgen - regenerates internal/mocks/ports_mock.go
//   Run: go generate ./internal/mocks
//   Version: go.uber.org/mock/mockgen@v0.6.0 (matches go.uber.org/mock in go.mod)
//
// Air - live reload for the dashboard while editing templates and handlers
//   Install: go install github.com/air-verse/air@v1.63.0
//   Use with DEV=true so templates and static files are read from disk.
//   Docs: https://github.com/air-verse/air
