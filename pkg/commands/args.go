package commands

import "strings"

// Args is the parsed form of one command line. Construction never fails;
// absence is represented, not an error.
type Args struct {
	Name       string
	Positional []string
	Flags      map[string]string
	Title      string
	// Body is the text after the first "|", trimmed. HasBody distinguishes
	// "no | present" from "| with nothing after it".
	Body    string
	HasBody bool
}

// Rest rejoins the flag-stripped positional tokens with single spaces.
func (a Args) Rest() string {
	return strings.Join(a.Positional, " ")
}

// ParseArgs tokenizes line into a command name, recognized --flag value
// pairs, and a title/body split on the first "|". Flag tokens and their
// values are excised from the positional stream as they are recognized; a
// trailing flag with no value is dropped rather than treated as an error.
func ParseArgs(line string, flagNames ...string) Args {
	args := Args{Flags: make(map[string]string)}

	tokens := strings.Fields(strings.TrimSpace(line))
	if len(tokens) == 0 {
		return args
	}

	args.Name = strings.ToLower(tokens[0])
	positional := tokens[1:]

	for _, flag := range flagNames {
		marker := "--" + flag
		for i, tok := range positional {
			if tok != marker {
				continue
			}
			if i+1 < len(positional) {
				args.Flags[flag] = positional[i+1]
				positional = append(positional[:i], positional[i+2:]...)
			} else {
				positional = positional[:i]
			}
			break
		}
	}

	args.Positional = positional

	rest := strings.Join(positional, " ")
	if before, after, ok := strings.Cut(rest, "|"); ok {
		args.Title = strings.TrimSpace(before)
		args.Body = strings.TrimSpace(after)
		args.HasBody = args.Body != ""
	} else {
		args.Title = strings.TrimSpace(rest)
	}

	return args
}
