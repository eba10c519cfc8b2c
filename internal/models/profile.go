package models

// Profile is the candidate profile edited locally and mirrored to /api/profile.
type Profile struct {
	Headline string       `json:"headline"`
	Location string       `json:"location"`
	About    string       `json:"about"`
	Skills   []string     `json:"skills"`
	Links    ProfileLinks `json:"links"`
}

type ProfileLinks struct {
	Portfolio string `json:"portfolio"`
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
}

func DefaultProfile() Profile {
	return Profile{
		Headline: "CS Student • Entry-level roles • Open to internships",
		Location: "San Diego, CA",
		About:    "Computer Science student focused on building practical projects. Interested in internships and entry-level roles in software engineering.",
		Skills:   []string{"React", "Node.js", "SQL", "Git", "APIs"},
	}
}
