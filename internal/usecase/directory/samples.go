package directory

import (
	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// sampleID gives the placeholder rows stable ids across restarts.
func sampleID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("cofound:sample:"+name))
}

func sampleProfile(name, role, school, location, tz string, languages, skills []string, bio, availability string) *domain.Profile {
	return &domain.Profile{
		ID:                   sampleID(name),
		FullName:             name,
		Role:                 role,
		School:               school,
		Location:             location,
		Timezone:             tz,
		Languages:            pq.StringArray(languages),
		Skills:               pq.StringArray(skills),
		Interests:            pq.StringArray{},
		ResponsibilityAreas:  pq.StringArray{},
		Bio:                  bio,
		AvatarURL:            "https://api.dicebear.com/7.x/avataaars/svg?seed=" + firstName(name),
		Availability:         availability,
		CofounderPreferences: domain.DefaultCofounderPreferences(),
	}
}

func firstName(full string) string {
	for i, r := range full {
		if r == ' ' {
			return full[:i]
		}
	}
	return full
}

// SampleProfiles are shown on the generic browse page when no profiles exist.
func SampleProfiles() []*domain.Profile {
	return []*domain.Profile{
		sampleProfile("Alex Chen", "Full-Stack Developer", "Stanford University", "San Francisco, CA", "PST",
			[]string{"English", "Mandarin"}, []string{"React", "Node.js", "Python", "AI/ML"},
			"Computer Science student passionate about building AI-powered products. Looking for a co-founder to start a SaaS company.",
			"20 hrs/week"),
		sampleProfile("Sarah Williams", "Product Designer", "MIT", "Boston, MA", "EST",
			[]string{"English", "Spanish"}, []string{"UI/UX", "Figma", "Design Systems", "Research"},
			"Senior design student with experience at tech startups. Seeking a technical co-founder for an edtech venture.",
			"Part-time"),
		sampleProfile("Marcus Johnson", "Business & Marketing", "Harvard Business School", "New York, NY", "EST",
			[]string{"English", "French"}, []string{"Marketing", "Strategy", "Sales", "Growth"},
			"MBA student with 3 years in marketing. Looking to join a pre-seed startup as Head of Growth or co-founder.",
			"Full-time"),
		sampleProfile("Priya Patel", "Backend Developer", "UC Berkeley", "Berkeley, CA", "PST",
			[]string{"English", "Hindi", "Gujarati"}, []string{"Go", "Kubernetes", "AWS", "Microservices"},
			"Infrastructure engineer interested in fintech and crypto. Open to co-founding or joining early-stage teams.",
			"15 hrs/week"),
	}
}

// SampleTeams are shown on the generic browse page when no teams exist.
func SampleTeams() []*domain.Team {
	return []*domain.Team{
		{
			ID:          sampleID("EduFlow"),
			Name:        "EduFlow",
			Description: "AI-powered learning platform that adapts to each student's pace and style. We're building the future of personalized education.",
			Stage:       "Idea Stage",
			Industry:    "EdTech",
			Location:    "Remote",
			OpenRoles:   pq.StringArray{"Frontend Dev", "Marketing Lead"},
			TeamSize:    3,
			Type:        domain.TeamTypeStartup,
		},
		{
			ID:          sampleID("GreenChain"),
			Name:        "GreenChain",
			Description: "Blockchain solution for carbon credit tracking and trading. Making sustainability transparent and accessible.",
			Stage:       "Building",
			Industry:    "Climate Tech",
			Location:    "San Francisco, CA",
			OpenRoles:   pq.StringArray{"Blockchain Dev", "Sustainability Advisor"},
			TeamSize:    5,
			Type:        domain.TeamTypeStartup,
		},
		{
			ID:          sampleID("HealthHub"),
			Name:        "HealthHub",
			Description: "Telemedicine platform connecting patients with specialists. Streamlining healthcare access in underserved communities.",
			Stage:       "MVP",
			Industry:    "HealthTech",
			Location:    "Boston, MA",
			OpenRoles:   pq.StringArray{"iOS Developer", "Healthcare Operations"},
			TeamSize:    4,
			Type:        domain.TeamTypeStartup,
		},
	}
}
