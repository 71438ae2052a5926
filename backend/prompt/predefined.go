package prompt

type Predefined struct {
	Label  string
	Prompt string
}

var predefined = []Predefined{
	{Label: "Explain Codebase", Prompt: "explain this codebase to me"},
	{Label: "Fix Build Errors", Prompt: "fix any build errors"},
	{Label: "Find Bugs", Prompt: "are there any bugs in my code"},
}

// PredefinedPrompts returns the canonical prompts offered when adding a task.
func PredefinedPrompts() []Predefined {
	prompts := make([]Predefined, len(predefined))
	copy(prompts, predefined)
	return prompts
}
