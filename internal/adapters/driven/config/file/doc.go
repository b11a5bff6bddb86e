// Package file loads user defaults from a TOML configuration file.
// Config values seed flag defaults; flags given on the command line
// always win.
package file
