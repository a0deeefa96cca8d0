// Package app wires the command-line interface to the time-tracking store.
package app

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/danielbiegler/timebox/config"
)

const (
	envNoColor        = "NO_COLOR"
	envTimeboxNoColor = "TIMEBOX_NO_COLOR"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the timebox app instance.
func Get() *cli.App {
	timeboxApp := &cli.App{
		Name: "timebox",
		Usage: `
		Timebox is a purposefully simple personal time tracker for the
		command-line. It records spans of work as time boxes, each a
		chronological journal of timestamped notes.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Initialize the time tracking store. Does not overwrite an existing one",
				Action: initAction,
			},
			{
				Name:      "begin",
				Usage:     "Begin working on something. Creates a new active time box",
				ArgsUsage: "<description>",
				Action:    beginAction,
			},
			{
				Name:      "note",
				Usage:     "Add a note to the active time box",
				ArgsUsage: "<description>",
				Flags:     []cli.Flag{noteEndFlag},
				Action:    noteAction,
			},
			{
				Name:      "amend",
				Usage:     "Change the description of the active time box's last note",
				ArgsUsage: "<description>",
				Action:    amendAction,
			},
			{
				Name:   "end",
				Usage:  "End the active time box and archive it",
				Action: endAction,
			},
			{
				Name:   "resume",
				Usage:  "Make the last finished time box active again. Useful if you prematurely finish",
				Action: resumeAction,
			},
			{
				Name:   "cancel",
				Usage:  "Discard the active time box without archiving it",
				Action: cancelAction,
			},
			{
				Name:   "clear",
				Usage:  "Remove all finished time boxes. Refused while a time box is active",
				Action: clearAction,
			},
			{
				Name:   "status",
				Usage:  "Print the active time box",
				Action: statusAction,
			},
			{
				Name:  "list",
				Usage: "Print the finished time boxes",
				Flags: []cli.Flag{
					listDateFlag,
					listOrderFlag,
					listPageFlag,
					listLimitFlag,
					listAllFlag,
					jsonOutputFlag,
				},
				Action: listAction,
			},
			{
				Name:      "export",
				Usage:     "Generate output for integrating into other tools",
				ArgsUsage: "[csv|json|debug]",
				Action:    exportAction,
			},
		},
		Flags: []cli.Flag{
			dirFlag,
			backendFlag,
			jsonFormatFlag,
			noColorFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}

	return timeboxApp
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	config.InitializePaths()
	config.InitLogger(config.LogFilePath())

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envTimeboxNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting timebox")

	return nil
}
