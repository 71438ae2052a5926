package interactive

import "fmt"

type State int

const (
	StateMainMenu State = iota
	StateAddFlow
	StateDeleteFlow
	StateListFlow
	StateRunFlow
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateAddFlow:
		return "add"
	case StateDeleteFlow:
		return "delete"
	case StateListFlow:
		return "list"
	case StateRunFlow:
		return "run"
	case StateExit:
		return "exit"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
	ActionRun    Action = "run"
	ActionExit   Action = "exit"
)

// transitions out of the main menu. Every other state returns to the main
// menu once its flow is complete.
var transitions = map[Action]State{
	ActionAdd:    StateAddFlow,
	ActionDelete: StateDeleteFlow,
	ActionList:   StateListFlow,
	ActionRun:    StateRunFlow,
	ActionExit:   StateExit,
}

var mainMenuOptions = []Option{
	{Label: "Add Task", Value: string(ActionAdd)},
	{Label: "Delete Task", Value: string(ActionDelete)},
	{Label: "List Tasks", Value: string(ActionList)},
	{Label: "Run Tasks", Value: string(ActionRun)},
	{Label: "Exit", Value: string(ActionExit)},
}

func Next(action Action) (State, bool) {
	state, ok := transitions[action]
	return state, ok
}
