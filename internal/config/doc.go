// Package config provides configuration management for the inventory backend.
//
// Configuration is loaded from environment variables using the env package.
// Only PORT matters for the public API; everything else has a default that
// suits local development.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
