package resumes

// Patch is a shallow partial update: each non-nil field replaces the whole
// top-level value it names. Nested objects are never merged field by field.
type Patch struct {
	Title               *string       `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Public              *bool         `json:"public,omitempty"`
	Template            *string       `json:"template,omitempty" validate:"omitempty,max=50"`
	AccentColor         *string       `json:"accent_color,omitempty"`
	PersonalInfo        *PersonalInfo `json:"personal_info,omitempty"`
	ProfessionalSummary *string       `json:"professional_summary,omitempty"`
	Experience          *[]Experience `json:"experience,omitempty" validate:"omitempty,dive"`
	Education           *[]Education  `json:"education,omitempty" validate:"omitempty,dive"`
	Projects            *[]Project    `json:"projects,omitempty" validate:"omitempty,dive"`
	Skills              *[]string     `json:"skills,omitempty" validate:"omitempty,dive,max=100"`
}

// Keys lists the wire names of the top-level keys present in the patch.
func (p Patch) Keys() []string {
	var keys []string
	add := func(present bool, key string) {
		if present {
			keys = append(keys, key)
		}
	}
	add(p.Title != nil, "title")
	add(p.Public != nil, "public")
	add(p.Template != nil, "template")
	add(p.AccentColor != nil, "accent_color")
	add(p.PersonalInfo != nil, "personal_info")
	add(p.ProfessionalSummary != nil, "professional_summary")
	add(p.Experience != nil, "experience")
	add(p.Education != nil, "education")
	add(p.Projects != nil, "projects")
	add(p.Skills != nil, "skills")
	return keys
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return len(p.Keys()) == 0
}

// Apply replaces every top-level key of c that is present in p.
func (p Patch) Apply(c *Content) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Public != nil {
		c.Public = *p.Public
	}
	if p.Template != nil {
		c.Template = *p.Template
	}
	if p.AccentColor != nil {
		c.AccentColor = *p.AccentColor
	}
	if p.PersonalInfo != nil {
		c.PersonalInfo = *p.PersonalInfo
	}
	if p.ProfessionalSummary != nil {
		c.ProfessionalSummary = *p.ProfessionalSummary
	}
	if p.Experience != nil {
		c.Experience = append([]Experience(nil), (*p.Experience)...)
	}
	if p.Education != nil {
		c.Education = append([]Education(nil), (*p.Education)...)
	}
	if p.Projects != nil {
		c.Projects = append([]Project(nil), (*p.Projects)...)
	}
	if p.Skills != nil {
		c.Skills = append([]string(nil), (*p.Skills)...)
	}
	c.normalize()
}

// withImage returns a copy of p whose personal_info.image is url.
func (p Patch) withImage(url string) Patch {
	var info PersonalInfo
	if p.PersonalInfo != nil {
		info = *p.PersonalInfo
	}
	info.Image = url
	p.PersonalInfo = &info
	return p
}
