package runtime

var (
	// Set by goreleaser at build time
	Version   = "dev"
	GitCommit = "unknown"
	Timestamp = "unknown"
)
