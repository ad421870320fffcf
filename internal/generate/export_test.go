package generate

// Test-only exports for internal helper functions.

//nolint:gochecknoglobals // Test-only exports
var (
	ResolveSourceNames = resolveSourceNames
	GroupOf            = groupOf
)
