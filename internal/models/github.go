package models

// GitHubStats is the reshaped GitHub profile summary served by /api/github
type GitHubStats struct {
	Username      string            `json:"username"`
	Name          string            `json:"name,omitempty"`
	AvatarURL     string            `json:"avatarUrl"`
	Bio           string            `json:"bio,omitempty"`
	ProfileURL    string            `json:"profileUrl"`
	PublicRepos   int               `json:"publicRepos"`
	Followers     int               `json:"followers"`
	Following     int               `json:"following"`
	TotalStars    int               `json:"totalStars"`
	TotalForks    int               `json:"totalForks"`
	TopLanguages  []LanguageCount   `json:"topLanguages"`
	RecentRepos   []RepoSummary     `json:"recentRepos"`
	Contributions ContributionStats `json:"contributions"`
}

// LanguageCount is the number of repos whose primary language is Name
type LanguageCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RepoSummary is a single repository card
type RepoSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	UpdatedAt   string `json:"updatedAt"`
}

// ContributionStats summarises public activity
type ContributionStats struct {
	TotalEvents   int    `json:"totalEvents"`
	ActiveDays    int    `json:"activeDays"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	LastActive    string `json:"lastActive,omitempty"`
}
