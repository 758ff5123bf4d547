package catalog

import (
	"regexp"
	"time"
)

// Kind selects one of the three admin-managed catalogs. All share the same
// row shape and validation rules.
type Kind string

const (
	KindRole       Kind = "roles"
	KindDepartment Kind = "departments"
	KindJobTitle   Kind = "job_titles"
)

func (k Kind) TableName() string {
	switch k {
	case KindRole:
		return "system_roles"
	case KindDepartment:
		return "system_departments"
	case KindJobTitle:
		return "system_job_titles"
	}
	return ""
}

func (k Kind) Valid() bool {
	return k.TableName() != ""
}

// Entry is one catalog row. Codes are soft references: users and templates
// store the code string, so deletion is blocked while references exist but
// nothing cascades.
type Entry struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"column:code;not null;uniqueIndex"`
	Label       string    `json:"label" gorm:"column:label;not null"`
	Description *string   `json:"description,omitempty" gorm:"column:description"`
	Category    *string   `json:"category,omitempty" gorm:"column:category"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	IsSystem    bool      `json:"is_system" gorm:"column:is_system;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// EntryWithUsage augments a row with its live reference count for admin lists.
type EntryWithUsage struct {
	Entry
	UserCount int64 `json:"user_count"`
}

// SystemOptions is the dropdown bundle every authenticated user can read:
// the active entries of each catalog, with job titles grouped by category.
type SystemOptions struct {
	Roles       []Entry            `json:"roles"`
	Departments []Entry            `json:"departments"`
	JobTitles   map[string][]Entry `json:"job_titles"`
}

// UncategorizedGroup collects job titles whose row has no category.
const UncategorizedGroup = "OTHER"

var codePattern = regexp.MustCompile(`^[A-Z_]+$`)

func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}
