// Package testutil provides test helpers for invc tests.
//
// The package is organized into focused files:
//   - assert.go: assertion helpers (MustNoErr, AssertStrings, etc.)
//   - store_helpers.go: database test setup (NewTestStore, SeedTree)
//   - fs_helpers.go: filesystem helpers (WriteFile, MustExist)
package testutil
