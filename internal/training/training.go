package training

import (
	"time"
)

const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)

// Course is a training track employees enroll into.
type Course struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"column:title;not null"`
	Description     *string   `json:"description,omitempty" gorm:"column:description"`
	Category        *string   `json:"category,omitempty" gorm:"column:category"`
	DurationMinutes int       `json:"duration_minutes" gorm:"column:duration_minutes;not null;default:0"`
	IsMandatory     bool      `json:"is_mandatory" gorm:"column:is_mandatory;default:false"`
	IsActive        bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Course) TableName() string {
	return "training_courses"
}

type Module struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CourseID  int64     `json:"course_id" gorm:"column:course_id;not null;index"`
	Title     string    `json:"title" gorm:"column:title;not null"`
	Content   *string   `json:"content,omitempty" gorm:"column:content"`
	SortOrder int       `json:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Module) TableName() string {
	return "training_modules"
}

// Quiz is at most one per module. Replacing it drops and recreates the
// question set.
type Quiz struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	ModuleID     int64     `json:"module_id" gorm:"column:module_id;not null;uniqueIndex"`
	Title        string    `json:"title" gorm:"column:title;not null"`
	PassingScore int       `json:"passing_score" gorm:"column:passing_score;not null;default:70"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion stores options as a JSON-encoded string array.
type QuizQuestion struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	QuizID       int64     `json:"quiz_id" gorm:"column:quiz_id;not null;index"`
	Question     string    `json:"question" gorm:"column:question;not null"`
	Options      string    `json:"options" gorm:"column:options;not null"`
	CorrectIndex int       `json:"correct_index" gorm:"column:correct_index;not null"`
	SortOrder    int       `json:"sort_order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type Enrollment struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	CourseID       int64      `json:"course_id" gorm:"column:course_id;not null;uniqueIndex:idx_course_user"`
	UserID         int64      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_course_user"`
	Status         string     `json:"status" gorm:"column:status;not null;default:ENROLLED"`
	EnrolledAt     time.Time  `json:"enrolled_at" gorm:"column:enrolled_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" gorm:"column:completed_at"`
	CertificateURL *string    `json:"certificate_url,omitempty" gorm:"column:certificate_url"`
}

func (Enrollment) TableName() string {
	return "training_enrollments"
}

// CourseWithState annotates a course with the viewing user's enrollment.
type CourseWithState struct {
	Course
	EnrollmentStatus *string `json:"enrollment_status,omitempty"`
	CertificateURL   *string `json:"certificate_url,omitempty"`
}

// QuizView bundles a quiz with its ordered questions.
type QuizView struct {
	Quiz      Quiz           `json:"quiz"`
	Questions []QuizQuestion `json:"questions"`
}
