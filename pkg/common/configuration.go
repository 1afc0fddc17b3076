package common

import "github.com/alecthomas/kingpin/v2"

type FlagHolder interface {
	Flag(name, help string) *kingpin.FlagClause
}

// Configurable is implemented by everything that contributes flags to the
// command line.
type Configurable interface {
	SetupConfiguration(FlagHolder)
}

func SetupConfigurations(using FlagHolder, all ...Configurable) {
	for _, v := range all {
		v.SetupConfiguration(using)
	}
}
