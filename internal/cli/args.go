package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// splitArgs separates leading known flags from positional args.
// Parsing stops at "--" or at the first argument that is not a known flag.
func splitArgs(flags *pflag.FlagSet, args []string) (flagArgs, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return flagArgs, args[i+1:]
		}

		f := lookupFlag(flags, arg)
		if f == nil {
			return flagArgs, args[i:]
		}
		flagArgs = append(flagArgs, arg)

		// значение флага идет следующим аргументом, если не задано через '='
		if f.NoOptDefVal == "" && !strings.Contains(arg, "=") && i+1 < len(args) {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}
	return flagArgs, nil
}

func lookupFlag(flags *pflag.FlagSet, arg string) *pflag.Flag {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name, _, _ := strings.Cut(arg[2:], "=")
		return flags.Lookup(name)
	case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
		return flags.ShorthandLookup(arg[1:])
	default:
		return nil
	}
}
