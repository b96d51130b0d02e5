package config

import (
	"os"
	"strings"
)

// Variable is a named value referenced from other blocks as vars.<name>.
// The environment variable named after the uppercased variable name
// overrides the declared default, so secrets stay out of config files.
type Variable struct {
	Name    string `hcl:"name,label"`
	Default string `hcl:"default,optional"`
}

func (v *Variable) Resolve() string {
	if val := os.Getenv(strings.ToUpper(v.Name)); val != "" {
		return val
	}
	return v.Default
}
