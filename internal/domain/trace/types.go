package trace

// Task is a single row of a trace.
type Task struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Memory   string `json:"memory"`
	CPU      string `json:"cpu"`
}

// TaskGroup holds every task sharing a base name, in source order.
type TaskGroup struct {
	BaseName string `json:"baseName"`
	Tasks    []Task `json:"tasks"`
}

// Stats summarizes a parse result.
type Stats struct {
	Groups int `json:"groups"`
	Tasks  int `json:"tasks"`
}

// Summarize counts the groups and tasks in a parse result.
func Summarize(groups []TaskGroup) Stats {
	stats := Stats{Groups: len(groups)}
	for _, g := range groups {
		stats.Tasks += len(g.Tasks)
	}
	return stats
}
