package model

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Difficulty  Difficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	Published   bool       `gorm:"default:false" json:"published"`
	Order       int        `gorm:"column:sort_order;default:0" json:"order"`
	Lessons     []Lesson   `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID   uint       `gorm:"index;not null" json:"courseId"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Content    string     `gorm:"type:text" json:"content"`
	Order      int        `gorm:"column:sort_order;default:0" json:"order"`
	Topics     []Topic    `gorm:"foreignKey:LessonID" json:"topics,omitempty"`
	Activities []Activity `gorm:"foreignKey:LessonID" json:"activities,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// swagger:model Topic
type Topic struct {
	BaseModel
	LessonID     uint          `gorm:"index;not null" json:"lessonId"`
	Title        string        `gorm:"size:200;not null" json:"title"`
	Content      string        `gorm:"type:text" json:"content"`
	Order        int           `gorm:"column:sort_order;default:0" json:"order"`
	CodeExamples []CodeExample `gorm:"foreignKey:TopicID" json:"codeExamples,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}

// swagger:model CodeExample
type CodeExample struct {
	BaseModel
	TopicID     uint   `gorm:"index;not null" json:"topicId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Language    string `gorm:"size:30;default:'html'" json:"language"`
	Code        string `gorm:"type:text;not null" json:"code"`
	Explanation string `gorm:"type:text" json:"explanation"`
}

func (CodeExample) TableName() string {
	return "code_examples"
}
