package assistant

import (
	"strconv"
	"strings"

	"github.com/gdugdh24/cofound-backend/internal/domain"
)

const notSpecified = "Not specified"

const personaIntro = `You are Dova, a friendly AI assistant for a co-founder and teammate matching platform. Your personality is warm, encouraging, and helpful - like a supportive mentor.

Your main goals:
1. Help users find perfect co-founders or hackathon teammates
2. Understand what users are looking for in partners
3. Give personalized advice based on their profile and preferences
4. If their profile is incomplete, gently ask questions to understand them better`

const personaOutro = `Keep responses concise (2-4 sentences usually). Be conversational and supportive. Use occasional emojis to be friendly 🌟

If asked about finding matches, suggest they:
- Complete their profile with skills and interests
- Browse the "Find Co-founders" or "Competitions" sections
- Be specific about what they're looking for`

const anonymousContext = "The user is not logged in or has no profile yet. Encourage them to create an account and complete their profile for better matching."

// SystemPrompt builds the persona instructions, personalised when a profile
// is available.
func SystemPrompt(profile *domain.Profile) string {
	var b strings.Builder
	b.WriteString(personaIntro)
	b.WriteString("\n\n")
	if profile != nil {
		b.WriteString("Current user's profile from database:\n")
		b.WriteString(ProfileSummary(profile))
		b.WriteString("\n\nUse this information to personalize your responses. Reference their skills, interests, or goals when relevant.")
	} else {
		b.WriteString(anonymousContext)
	}
	b.WriteString("\n\n")
	b.WriteString(personaOutro)
	return b.String()
}

// ProfileSummary renders the profile as the bullet list embedded in the
// system prompt.
func ProfileSummary(p *domain.Profile) string {
	name := p.FullName
	if name == "" {
		name = "Unknown"
	}
	hours := notSpecified
	if p.HoursPerWeek != nil && *p.HoursPerWeek != 0 {
		hours = strconv.Itoa(*p.HoursPerWeek)
	}

	lines := []string{
		"User Profile:",
		"- Name: " + name,
		"- Role: " + orNotSpecified(p.Role),
		"- School: " + orNotSpecified(p.School),
		"- Location: " + orNotSpecified(p.Location),
		"- Experience Level: " + orNotSpecified(p.ExperienceLevel),
		"- User Type: " + orNotSpecified(string(p.UserType)) + " (looking for: " + lookingFor(p.UserType) + ")",
		"- Skills: " + joinOrNotSpecified(p.Skills),
		"- Interests: " + joinOrNotSpecified(p.Interests),
		"- Languages: " + joinOrNotSpecified(p.Languages),
		"- Bio: " + orNotSpecified(p.Bio),
		"- Availability: " + orNotSpecified(p.Availability),
		"- Hours per week: " + hours,
	}
	return strings.Join(lines, "\n")
}

func lookingFor(t domain.UserType) string {
	switch t {
	case domain.UserTypeCompetition:
		return "hackathon teammates"
	case domain.UserTypeStartup:
		return "co-founders"
	default:
		return "both"
	}
}

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

func joinOrNotSpecified(list []string) string {
	if len(list) == 0 {
		return notSpecified
	}
	return strings.Join(list, ", ")
}
