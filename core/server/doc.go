// Package server holds the configuration for the HTTP status API.
//
// Splitting the configuration from the serving code keeps the config
// package free of a fiber dependency; the server itself is assembled in
// the start command.
package server
