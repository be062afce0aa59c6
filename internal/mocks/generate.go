// Package mocks provides mock implementations for testing the boxoffice dashboard.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	kv := mocks.NewMockKeyValueStore(ctrl)
//	kv.EXPECT().Get(gomock.Any(), "boxoffice:s1:token").Return("abc", true, nil)
package mocks

// Generate mocks for the storage, auth backend and resource ports from internal/ports.
// This creates MockAuthBackend, MockEventsAPI, MockKeyValueStore, MockSectionsAPI, MockTicketsAPI and MockVenuesAPI.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/target/boxoffice/internal/ports AuthBackend,EventsAPI,KeyValueStore,SectionsAPI,TicketsAPI,VenuesAPI
