package commands

import "strings"

// FormatHelpMessage renders the command list for the help reply.
func FormatHelpMessage(defs []Definition) string {
	if len(defs) == 0 {
		return "No commands available."
	}

	lines := make([]string, 0, len(defs))
	for _, def := range defs {
		usage := def.Usage
		if usage == "" {
			usage = Prefix + def.Name
		}
		if def.Description != "" {
			lines = append(lines, "`"+usage+"` — "+def.Description)
		} else {
			lines = append(lines, "`"+usage+"`")
		}
	}

	return strings.Join(lines, "\n")
}
