package model

// Entry is one todo item. It has no id; its position in the list is its identity.
type Entry struct {
	Name    string `json:"name" toml:"name"`
	DueDate string `json:"dueDate" toml:"due_date"`
}
