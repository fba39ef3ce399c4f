package config

import (
	"flag"
	"strconv"
	"strings"
)

// boolFlags returns the names of flags that don't take a value.
func boolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals so the
// stdlib flag package, which stops at the first positional, still sees
// flags given after N. "--" ends flag parsing. A bare negative integer is a
// positional, so `fibfizz -3` reports a bad bound rather than an unknown
// flag.
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	bools := boolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			posArgs = append(posArgs, argv[i+1:]...)
			break
		}
		if arg == "-" || isNegativeInteger(arg) || !strings.HasPrefix(arg, "-") {
			posArgs = append(posArgs, arg)
			continue
		}

		flagArgs = append(flagArgs, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if !bools[name] && i+1 < len(argv) {
			flagArgs = append(flagArgs, argv[i+1])
			i++
		}
	}
	return flagArgs, posArgs
}

func isNegativeInteger(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return true
	}
	// Out-of-range digits are still a number, not a flag.
	return strings.Trim(s[1:], "0123456789") == ""
}
