package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Samandarcodee/Yurlo-sub000/internal/config"
)

var CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API." default:"1"`
	Metrics MetricsCmd `cmd:"" help:"Print BMR, TDEE, calorie and macro targets for a profile."`
}

func main() {
	if err := config.LoadDotenv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name("healthd"),
		kong.Description("Health metrics and insights service"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
