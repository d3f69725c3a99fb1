package models

// Social is a link shown in the hero and footer
type Social struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
}

// Profile holds the owner's identity and about text
type Profile struct {
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Tagline        string   `json:"tagline"`
	About          []string `json:"about"`
	Location       string   `json:"location,omitempty"`
	Email          string   `json:"email,omitempty"`
	AvatarURL      string   `json:"avatar_url,omitempty"`
	ResumeURL      string   `json:"resume_url,omitempty"`
	GitHubUsername string   `json:"github_username,omitempty"`
	DevToUsername  string   `json:"devto_username,omitempty"`
	Socials        []Social `json:"socials,omitempty"`
}

// Skill is a single proficiency entry
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"` // 0-100
	Icon  string `json:"icon,omitempty"`
}

// SkillCategory groups skills under a heading
type SkillCategory struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Skills []Skill `json:"skills"`
}

// Experience is one position in the work history
type Experience struct {
	ID         string   `json:"id"`
	Role       string   `json:"role"`
	Company    string   `json:"company"`
	Location   string   `json:"location,omitempty"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date,omitempty"`
	Current    bool     `json:"current"`
	Highlights []string `json:"highlights"`
	TechStack  []string `json:"tech_stack,omitempty"`
}

// Achievement is an award, certification or milestone
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Issuer      string `json:"issuer,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Site is everything in content.json apart from projects
type Site struct {
	Profile      Profile         `json:"profile"`
	Skills       []SkillCategory `json:"skills"`
	Experience   []Experience    `json:"experience"`
	Achievements []Achievement   `json:"achievements"`
}
