package app

import "github.com/urfave/cli/v2"

var (
	dirFlag = &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"o"},
		Usage:   "Directory holding the persisted store state. Defaults to the XDG data directory",
	}

	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "Persistence backend: json or bolt",
	}

	jsonFormatFlag = &cli.StringFlag{
		Name:  "json-format",
		Usage: "Serialization density of the JSON backend: pretty or compact",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	noteEndFlag = &cli.BoolFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "End the time box after adding the note",
	}

	listDateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage: "Filter by date or date range. Accepts 'today', 'yesterday', 'this-week', 'last-week',\n\t\t\t\t'this-month', 'last-month', a date (YYYY-MM-DD), or a range (YYYY-MM-DD..YYYY-MM-DD)",
	}

	listOrderFlag = &cli.StringFlag{
		Name:    "order",
		Aliases: []string{"r"},
		Usage:   "Order of the listed time boxes: ascending or descending. Descending means the latest come first",
		Value:   "ascending",
	}

	listPageFlag = &cli.UintFlag{
		Name:    "page",
		Aliases: []string{"p"},
		Usage:   "Page of results to show (0-indexed). Only applies when no date filter is set",
	}

	listLimitFlag = &cli.UintFlag{
		Name:    "limit",
		Aliases: []string{"l"},
		Usage:   "Number of time boxes per page. Only applies when no date filter is set",
	}

	listAllFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "List all finished time boxes",
	}

	jsonOutputFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print results as JSON instead of a table",
	}
)
