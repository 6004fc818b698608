package model

// CustomField is a dynamically typed attribute attached to a task. Field IDs
// are configured per deployment and must be treated as opaque keys; Value may
// be a string, a number, or a nested object holding the real value.
type CustomField struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// TaskStatus is the status object the project-management API nests inside a
// task.
type TaskStatus struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
}

// Task is one item from the project-management source: an installation,
// survey, feedback entry, pending item, or B2B lead.
type Task struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	Status       TaskStatus    `json:"status"`
	DateCreated  string        `json:"date_created,omitempty"`
	DueDate      string        `json:"due_date,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}
