package game

import (
	"fmt"
	"sort"
	"strings"
)

var builtinLayouts = map[string]string{
	"corridor": strings.Join([]string{
		"%%%%%",
		"%P .%",
		"%R  %",
		"%%%%%",
	}, "\n"),
	"smallArena": strings.Join([]string{
		"%%%%%%%%%%%%%%%%%%%%",
		"%P.....%....%.....R%",
		"%.%%%%.%.%%.%.%%%%.%",
		"%.%....  G .....%..%",
		"%.%.%%%%%%%%%%.%%%.%",
		"%......o....o......%",
		"%%%%%%%%%%%%%%%%%%%%",
	}, "\n"),
	"mediumArena": strings.Join([]string{
		"%%%%%%%%%%%%%%%%%%%%%%%%%%%%",
		"%P.....%..............%....%",
		"%.%%%%.%.%%%%%%%%%%%%.%.%%.%",
		"%.%o.....%   1  %.........%%",
		"%.%.%%%%.%%% %%%%.%%%%%%.%.%",
		"%......%....2.........%....%",
		"%.%%%%.%.%%%%%%%%%%%%.%.%%.%",
		"%....%.........o......%...R%",
		"%%%%%%%%%%%%%%%%%%%%%%%%%%%%",
	}, "\n"),
}

// BuiltinLayout returns one of the layouts compiled into the binary.
func BuiltinLayout(name string) (*Layout, error) {
	text, ok := builtinLayouts[name]
	if !ok {
		return nil, fmt.Errorf("no built-in layout %q (have %s)", name, strings.Join(BuiltinLayoutNames(), ", "))
	}
	return ParseLayout(name, text)
}

func BuiltinLayoutNames() []string {
	names := make([]string, 0, len(builtinLayouts))
	for name := range builtinLayouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
