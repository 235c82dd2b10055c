package course

// CurriculumTree is the whole-document form of a course's curriculum, as
// exchanged with the admin surface. Structural edits are expressed by
// submitting the full new document; id 0 marks a new node.
type CurriculumTree struct {
	Sections []SectionNode `json:"sections"`
}

type SectionNode struct {
	ID       uint           `json:"id"`
	Title    string         `json:"title"`
	Lectures []LectureNode  `json:"lectures"`
	Quiz     []QuestionNode `json:"quiz,omitempty"`
}

type LectureNode struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	VideoURL      string   `json:"video_url,omitempty"`
	Resources     []string `json:"resources,omitempty"`
	DurationLabel string   `json:"duration_label"`
	IsCompleted   bool     `json:"is_completed,omitempty"`
}

type QuestionNode struct {
	ID            uint     `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option,omitempty"`
}
