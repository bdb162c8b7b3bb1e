package cli

import (
	"io"

	"github.com/alecthomas/kong"

	"github.com/vcrobe/rtc/log"
)

type logConfig struct {
	Level  string `default:"info" enum:"debug,info,warn,error" help:"Log level (${enum})."`
	Format string `default:"text" enum:"text,json" help:"Log format (${enum})."`
	Pretty bool   `default:"true" negatable:"" help:"Style text logs for the terminal."`
}

func (logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start points the package logger at w. The values were checked by kong.
func (c logConfig) start(w io.Writer) {
	level, _ := log.ParseLevel(c.Level)
	format, _ := log.ParseFormat(c.Format)
	log.Config(
		log.WithOutput(w),
		log.WithLevel(level),
		log.WithFormat(format),
		log.WithPretty(c.Pretty),
	)
}
