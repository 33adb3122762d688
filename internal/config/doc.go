// Package config provides application configuration loaded from environment
// variables (prefix IDXSTAT) with optional YAML file overrides.
//
// Environment variables take precedence over the config file. Defaults are
// declared on the struct tags, so a zero-configuration run works out of the
// box with the standard Asia8/Euro7 benchmark set and a 3-year rolling
// window.
package config
