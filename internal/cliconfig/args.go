package cliconfig

import "strings"

// PairFlags take two values each: --colour FILE VAR and --filter METRIC THRESHOLD.
var PairFlags = []string{"colour", "filter"}

// NormalizePairArgs rewrites "--flag A B" into "--flag=A --flag=B" for each
// of the named two-valued flags so they can be parsed as repeated string
// flags. Underscore and hyphen spellings are treated alike. Arguments after
// "--" are left untouched.
func NormalizePairArgs(args []string, flags ...string) []string {
	pair := make(map[string]bool, len(flags))
	for _, f := range flags {
		pair[f] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			out = append(out, args[i:]...)
			break
		}
		name, isFlag := strings.CutPrefix(a, "--")
		if !isFlag || strings.Contains(name, "=") {
			out = append(out, a)
			continue
		}
		name = strings.ReplaceAll(name, "_", "-")
		if !pair[name] || i+2 >= len(args) {
			out = append(out, a)
			continue
		}
		out = append(out, "--"+name+"="+args[i+1], "--"+name+"="+args[i+2])
		i += 2
	}
	return out
}
