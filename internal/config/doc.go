// Package config loads derivgen.yaml, the tool settings: where the tables
// live, where fragments go and which field kinds to generate for.
package config
