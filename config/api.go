package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// GraphQL surface is read-only, no auth
	return []string{"/graphql", "/playground", "/healthz"}
}
