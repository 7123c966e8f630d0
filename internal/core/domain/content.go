package domain

import "time"

// SiteContent is the singleton document holding all editable site copy.
// It is created with defaults on first read if absent.
type SiteContent struct {
	ID         string      `json:"id"`
	Hero       Hero        `json:"hero"`
	About      About       `json:"about"`
	Advantages []Advantage `json:"advantages"`
	Footer     Footer      `json:"footer"`
	SiteImages []string    `json:"siteImages"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
	Image    string `json:"image,omitempty"`
}

type About struct {
	Excerpt     string `json:"excerpt"`
	Description string `json:"description"`
}

type Advantage struct {
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Footer struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Hours string `json:"hours"`
}

// DefaultSiteContent returns the copy used to seed the singleton document.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		Hero: Hero{
			Title:    "Bienvenue sur OpenDev",
			Subtitle: "Votre partenaire de développement",
			CTAText:  "Découvrir nos services",
			CTALink:  "/services",
		},
		About: About{
			Excerpt: "Nous sommes une équipe passionnée...",
		},
		Footer: Footer{
			Email: "contact@opendev.com",
			Phone: "+33 1 23 45 67 89",
			Hours: "Lun-Ven: 9h-18h",
		},
	}
}
