package listing

import "github.com/jimezsa/jobhunt/internal/models"

// DemoNotice is shown whenever the demo dataset stands in for the backend.
const DemoNotice = "Backend unreachable: using demo data"

// DemoJobs returns the built-in dataset used when demo fallback is enabled.
func DemoJobs() []models.Job {
	return []models.Job{
		{
			ID:                "demo-1",
			Title:             "Junior Software Engineer",
			Company:           "Harbor Analytics",
			Location:          "San Diego, CA (Hybrid)",
			Type:              "Full-time",
			Salary:            "$80k–$115k",
			Description:       "Build internal data tools in Go and TypeScript alongside a small platform team.",
			SourceURLs:        []string{"https://harbor-analytics.example/careers", "https://linkedin.com/jobs/view/1001"},
			SourceNames:       []string{"Company Site", "LinkedIn"},
			Verdict:           "certified",
			VerificationScore: 92,
			PostedAt:          "2024-05-20T09:00:00Z",
		},
		{
			ID:                "demo-2",
			Title:             "Software Engineering Intern",
			Company:           "Pacific Robotics",
			Location:          "Remote (US)",
			Type:              "Internship",
			Salary:            "$28/hr",
			Description:       "Summer internship on the robot fleet telemetry pipeline.",
			SourceURLs:        []string{"https://pacific-robotics.example/jobs/intern"},
			SourceNames:       []string{"Company Site"},
			Verdict:           "certified",
			VerificationScore: 88,
			PostedAt:          "2024-05-18T15:30:00Z",
		},
		{
			ID:                "demo-3",
			Title:             "Data Analyst",
			Company:           "Coastline Health",
			Location:          "Los Angeles, CA",
			Type:              "Full-time",
			Salary:            "$70k–$90k",
			Description:       "SQL-heavy reporting role supporting clinical operations.",
			SourceURLs:        []string{"https://coastline-health.example/careers/analyst"},
			Verdict:           "pending",
			VerificationScore: 41,
			PostedAt:          "2024-05-19T11:00:00Z",
		},
		{
			ID:                "demo-4",
			Title:             "Backend Developer (Contract)",
			Company:           "Atlas Freight",
			Location:          "Austin, TX",
			Type:              "Contract",
			Salary:            "$60/hr",
			Description:       "Six month contract extending a shipment tracking API.",
			SourceURLs:        []string{"https://atlas-freight.example/contract-backend"},
			SourceNames:       []string{"Company Site"},
			Verdict:           "certified",
			VerificationScore: 76,
		},
		{
			ID:                "demo-5",
			Title:             "IT Support Specialist",
			Company:           "Bayview Schools",
			Location:          "San Diego, CA",
			Type:              "Part-time",
			Salary:            "$24/hr",
			Description:       "Help desk and device management for three campuses.",
			Verdict:           "pending",
			VerificationScore: 35,
			PostedAt:          "2024-05-21T08:15:00Z",
		},
	}
}
