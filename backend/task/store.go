package task

type Task struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Store is an insertion-ordered collection of tasks keyed by name. It is owned
// by a single session and is not safe for concurrent mutation.
type Store struct {
	order        []string
	descriptions map[string]string
}

func NewStore() *Store {
	return &Store{
		descriptions: make(map[string]string),
	}
}

// Add inserts the task or overwrites the description of an existing task with
// the same name. Incomplete input is ignored and reported as false.
func (s *Store) Add(name, description string) bool {
	if name == "" || description == "" {
		return false
	}

	if _, exists := s.descriptions[name]; !exists {
		s.order = append(s.order, name)
	}
	s.descriptions[name] = description
	return true
}

// Delete removes the named task and reports whether there was anything to remove.
func (s *Store) Delete(name string) bool {
	if _, exists := s.descriptions[name]; !exists {
		return false
	}

	delete(s.descriptions, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns a snapshot of the tasks in insertion order.
func (s *Store) List() []Task {
	tasks := make([]Task, 0, len(s.order))
	for _, name := range s.order {
		tasks = append(tasks, Task{Name: name, Description: s.descriptions[name]})
	}
	return tasks
}

func (s *Store) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

func (s *Store) Get(name string) (string, bool) {
	description, ok := s.descriptions[name]
	return description, ok
}

func (s *Store) Len() int {
	return len(s.order)
}

func (s *Store) IsEmpty() bool {
	return len(s.order) == 0
}
