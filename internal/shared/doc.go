// Package shared holds cross-cutting helpers that belong to no single
// domain package. Test fixtures live in shared/testutil.
package shared
