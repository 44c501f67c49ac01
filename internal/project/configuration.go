package project

import (
	"fmt"
	"strings"
)

// BuildConfiguration is one of the four standard CMake build modes.
type BuildConfiguration int

const (
	Debug BuildConfiguration = iota
	Release
	RelWithDebInfo
	MinSizeRel
)

var configurationNames = [...]string{
	Debug:          "Debug",
	Release:        "Release",
	RelWithDebInfo: "RelWithDebInfo",
	MinSizeRel:     "MinSizeRel",
}

// AllConfigurations returns every build configuration in generation order.
func AllConfigurations() []BuildConfiguration {
	return []BuildConfiguration{Debug, Release, RelWithDebInfo, MinSizeRel}
}

func (c BuildConfiguration) String() string {
	if c < 0 || int(c) >= len(configurationNames) {
		return fmt.Sprintf("BuildConfiguration(%d)", int(c))
	}
	return configurationNames[c]
}

// Definition returns the compile-time definition the project descriptor
// sets for this configuration, e.g. DEBUG_MODE.
func (c BuildConfiguration) Definition() string {
	return strings.ToUpper(c.String()) + "_MODE"
}

// ParseBuildConfiguration parses a configuration name, case-insensitively.
func ParseBuildConfiguration(s string) (BuildConfiguration, error) {
	for _, c := range AllConfigurations() {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown build configuration %q", s)
}
