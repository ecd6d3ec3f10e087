package resumes

import (
	"slices"
	"time"
)

const (
	DefaultTemplate    = "classic"
	DefaultAccentColor = "#3B82F6"
)

type PersonalInfo struct {
	FullName   string `json:"full_name" validate:"max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"max=50"`
	Location   string `json:"location" validate:"max=200"`
	Profession string `json:"profession" validate:"max=200"`
	LinkedIn   string `json:"linkedin" validate:"omitempty,url"`
	Website    string `json:"website" validate:"omitempty,url"`
	// Image is always a processed URL once stored.
	Image string `json:"image" validate:"omitempty,http_url"`
}

type Experience struct {
	Company     string `json:"company" validate:"max=200"`
	Position    string `json:"position" validate:"max=200"`
	StartDate   string `json:"start_date" validate:"max=50"`
	EndDate     string `json:"end_date" validate:"max=50"`
	Description string `json:"description"`
	IsCurrent   bool   `json:"is_current"`
}

type Education struct {
	Institution    string `json:"institution" validate:"max=200"`
	Degree         string `json:"degree" validate:"max=200"`
	Field          string `json:"field" validate:"max=200"`
	GraduationDate string `json:"graduation_date" validate:"max=50"`
	GPA            string `json:"gpa" validate:"max=20"`
}

type Project struct {
	Name        string `json:"name" validate:"max=200"`
	Type        string `json:"type" validate:"max=200"`
	Description string `json:"description"`
}

// Content is the client-editable part of a resume, persisted as one document.
type Content struct {
	Title               string       `json:"title" validate:"required,max=200"`
	Public              bool         `json:"public"`
	Template            string       `json:"template" validate:"max=50"`
	AccentColor         string       `json:"accent_color" validate:"omitempty,hexcolor"`
	PersonalInfo        PersonalInfo `json:"personal_info"`
	ProfessionalSummary string       `json:"professional_summary"`
	Experience          []Experience `json:"experience" validate:"dive"`
	Education           []Education  `json:"education" validate:"dive"`
	Projects            []Project    `json:"projects" validate:"dive"`
	Skills              []string     `json:"skills" validate:"dive,max=100"`
}

// Resume is a stored resume. ID and UserID never change after creation.
type Resume struct {
	ID     string `json:"_id"`
	UserID string `json:"userId"`
	Content
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewContent returns the content of a freshly created resume.
func NewContent(title string) Content {
	c := Content{
		Title:       title,
		Template:    DefaultTemplate,
		AccentColor: DefaultAccentColor,
	}
	c.normalize()
	return c
}

// normalize replaces nil sections with empty ones so they encode as [].
func (c *Content) normalize() {
	if c.Experience == nil {
		c.Experience = []Experience{}
	}
	if c.Education == nil {
		c.Education = []Education{}
	}
	if c.Projects == nil {
		c.Projects = []Project{}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
}

func (r Resume) clone() Resume {
	out := r
	out.Experience = slices.Clone(r.Experience)
	out.Education = slices.Clone(r.Education)
	out.Projects = slices.Clone(r.Projects)
	out.Skills = slices.Clone(r.Skills)
	out.normalize()
	return out
}
