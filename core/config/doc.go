// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded from
// a .env file. Defaults are declared as struct tags on the partial
// config structs owned by each package and bound into Viper by
// reflection, so adding a setting is a one-line change next to the code
// that consumes it.
//
// Keys map to environment variables with underscores, e.g.
// warden.allowed_cpus is set via WARDEN_ALLOWED_CPUS.
package config
