package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"
)

var profileModes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"trace":     profile.TraceProfile,
}

type profileConfig struct {
	Mode string `default:"" enum:",${profileModes}" help:"Write a runtime profile of the run (${enum})."`
	Dir  string `default:"." type:"path" help:"Directory the profile is written to."`
}

func (profileConfig) vars() kong.Vars {
	return kong.Vars{"profileModes": strings.Join(slices.Sorted(maps.Keys(profileModes)), ",")}
}

func (profileConfig) group() kong.Group {
	return kong.Group{Key: "profile", Title: "Profiling options"}
}

// start begins profiling when a mode is set and returns the function that
// stops it.
func (c profileConfig) start() (stop func()) {
	mode, ok := profileModes[c.Mode]
	if !ok {
		return func() {}
	}
	return profile.Start(mode, profile.ProfilePath(c.Dir), profile.Quiet, profile.NoShutdownHook).Stop
}
