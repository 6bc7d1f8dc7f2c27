package app

// Command selects what one invocation does.
type Command int

const (
	CommandUnknown Command = iota
	CommandAdd
	CommandList
	CommandRead
	CommandDelete
)

func (c Command) String() string {
	switch c {
	case CommandAdd:
		return "add"
	case CommandList:
		return "list"
	case CommandRead:
		return "read"
	case CommandDelete:
		return "delete"
	}
	return "unknown"
}

// ParseCommand maps the command flags to a Command. No flags means add; more
// than one flag, or any positional argument, is unknown.
func ParseCommand(list, read, del bool, args []string) Command {
	if len(args) > 0 {
		return CommandUnknown
	}
	n := 0
	cmd := CommandAdd
	if list {
		n++
		cmd = CommandList
	}
	if read {
		n++
		cmd = CommandRead
	}
	if del {
		n++
		cmd = CommandDelete
	}
	if n > 1 {
		return CommandUnknown
	}
	return cmd
}
