// Package gngenomes provides the version of the GNgenomes application.
package gngenomes

var (
	// Version of the application. It is set during the compilation
	// via build flags.
	Version = "v0.1.0"

	// Build is a timestamp of the compilation. It is set during the
	// compilation via build flags.
	Build = "n/a"
)
