package cli

import (
	"flag"
	"fmt"
	"io"
	"jacl/internal/global"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	RootCLICommand  string = "root"
	helpMenuTrailer string = `
Protocol notes:
  Lines are newline terminated. A line holding only X (or any X inside a line)
  marks the preceding fragment as torn; readers discard it and resynchronize.

Clients connect to an already running JACK server and never start one.
`
)

// Full standardized help menu (wraps option printer as well)
func PrintHelpMenu(out io.Writer, fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	const baseIndentSpaces = 2

	curCmdSet := rootCmd
	if command != "" && command != RootCLICommand {
		cmd, ok := rootCmd.ChildCommands[command]
		if !ok {
			fmt.Fprintf(out, "Unknown command: %s\n", command)
			return
		}
		curCmdSet = cmd
	}

	// Usage line omits the root name
	usageParts := []string{filepath.Base(os.Args[0])}
	if curCmdSet != rootCmd {
		usageParts = append(usageParts, curCmdSet.CommandName)
	}
	if len(curCmdSet.ChildCommands) > 0 {
		usageParts = append(usageParts, "[subcommand]")
	}
	if curCmdSet.UsageOption != "" {
		usageParts = append(usageParts, curCmdSet.UsageOption)
	}
	fmt.Fprintf(out, "Usage: %s\n\n", strings.Join(usageParts, " "))

	if curCmdSet == rootCmd {
		fmt.Fprintln(out, curCmdSet.Description)
		fmt.Fprintln(out, curCmdSet.FullDescription)
		fmt.Fprintln(out)
	} else if curCmdSet.FullDescription != "" {
		fmt.Fprintln(out, "  Description:")
		fmt.Fprintf(out, "    %s\n\n", curCmdSet.FullDescription)
	}

	if len(curCmdSet.ChildCommands) > 0 {
		subNames := make([]string, 0, len(curCmdSet.ChildCommands))
		maxLen := 0
		for name := range curCmdSet.ChildCommands {
			subNames = append(subNames, name)
			maxLen = max(maxLen, len(name))
		}
		sort.Strings(subNames)

		fmt.Fprintf(out, "%sSubcommands:\n", strings.Repeat(" ", baseIndentSpaces))
		cmdIndent := strings.Repeat(" ", baseIndentSpaces+2)
		for _, name := range subNames {
			padding := strings.Repeat(" ", maxLen-len(name)+2)
			fmt.Fprintf(out, "%s%s%s - %s\n", cmdIndent, name, padding, curCmdSet.ChildCommands[name].Description)
		}
		fmt.Fprintln(out)
	}

	printFlagOptions(out, fs, baseIndentSpaces)

	if curCmdSet == rootCmd {
		fmt.Fprint(out, helpMenuTrailer)
	}
}

// Custom printer to merge short/long flags sharing one usage text
func printFlagOptions(out io.Writer, fs *flag.FlagSet, baseIndentSpaces int) {
	const argToUsageSpaces int = 2

	type optInfo struct {
		short      string
		long       []string
		usage      string
		defaultVal string
	}

	var opts []*optInfo
	byUsage := make(map[string]*optInfo)
	fs.VisitAll(func(arg *flag.Flag) {
		opt, seen := byUsage[arg.Usage]
		if !seen {
			opt = &optInfo{usage: arg.Usage, defaultVal: arg.DefValue}
			byUsage[arg.Usage] = opt
			opts = append(opts, opt)
		}
		if len(arg.Name) == 1 {
			opt.short = "-" + arg.Name
		} else {
			opt.long = append(opt.long, "--"+arg.Name)
		}
	})

	// Left column always reserves room for a short flag ("-x, ")
	left := func(opt *optInfo) (text string) {
		shortCol := "    "
		if opt.short != "" {
			shortCol = opt.short
			if len(opt.long) > 0 {
				shortCol += ", "
			}
		}
		text = shortCol + strings.Join(opt.long, ", ")
		return
	}

	sort.Slice(opts, func(a, b int) bool {
		return strings.TrimLeft(left(opts[a]), " -") < strings.TrimLeft(left(opts[b]), " -")
	})

	maxLen := 0
	for _, opt := range opts {
		maxLen = max(maxLen, len(left(opt)))
	}

	indent := strings.Repeat(" ", baseIndentSpaces)
	fmt.Fprintf(out, "%sOptions:\n", indent)
	for _, opt := range opts {
		leftText := left(opt)
		padding := strings.Repeat(" ", maxLen-len(leftText)+argToUsageSpaces)

		// Skip printing any "empty" defaults
		desc := opt.usage
		if opt.defaultVal != "" && opt.defaultVal != "false" && opt.defaultVal != "0" {
			desc += fmt.Sprintf(" [default: %s]", opt.defaultVal)
		}
		fmt.Fprintf(out, "%s%s%s%s\n", indent, leftText, padding, desc)
	}
}
