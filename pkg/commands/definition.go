package commands

type Definition struct {
	Name        string
	Description string
	Usage       string
	Aliases     []string
	// Flags lists the --flag names stripped from the argument stream
	// before the title/body split (e.g. "tag", "img").
	Flags   []string
	Handler Handler
}
