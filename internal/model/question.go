package model

type QuestionKind string

const (
	KindSingle QuestionKind = "single_choice"
	KindMulti  QuestionKind = "multiple_choice"
	KindForm   QuestionKind = "form"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	MaxLength   int    `json:"max_length,omitempty"`
}

// Question describes what the renderer shows for one step.
type Question struct {
	Step     Step         `json:"step"`
	Key      string       `json:"key"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	Kind     QuestionKind `json:"kind"`
	Options  []Option     `json:"options,omitempty"`
	Fields   []Field      `json:"fields,omitempty"`
	Required bool         `json:"required"`
}
