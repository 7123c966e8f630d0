// Package fallback holds the small static catalog served to public reads
// when the primary store is unreachable. Responses built from it are marked
// with meta.fallback so clients can tell placeholder data from real data.
package fallback

import (
	"time"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// Notice is the fixed message attached to every fallback response.
const Notice = "Données statiques affichées : configurez MONGO_URI et exécutez `site-api seed` pour activer la base réelle."

// Services returns the static service catalog. Entries carry synthetic ids
// that are also resolvable through lookups by id or slug.
func Services() []*domain.Service {
	year := time.Now().Year()
	return []*domain.Service{
		{
			ID:          "static-service-web",
			Title:       "Développement Web Sur Mesure",
			Description: "Sites vitrines, applications métiers et portails clients construits avec une architecture cloud moderne.",
			Slug:        "developpement-web-sur-mesure",
			CreatedAt:   time.Date(year, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "static-service-mobile",
			Title:       "Applications Mobiles & PWA",
			Description: "Expériences mobiles rapides, accessibles et installables avec les Progressive Web Apps.",
			Slug:        "applications-mobiles",
			CreatedAt:   time.Date(year, time.February, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "static-service-ecommerce",
			Title:       "E-commerce & Marketplaces",
			Description: "Catalogue, paiement sécurisé et automatisation des commandes pour booster vos ventes en ligne.",
			Slug:        "ecommerce-marketplaces",
			CreatedAt:   time.Date(year, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
	}
}

// FindService resolves a fallback service by synthetic id or slug.
func FindService(ref string) *domain.Service {
	for _, s := range Services() {
		if s.ID == ref || s.Slug == ref {
			return s
		}
	}
	return nil
}

// Projects returns the static project portfolio.
func Projects() []*domain.Project {
	year := time.Now().Year()
	return []*domain.Project{
		{
			ID:           "static-project-aurora",
			Title:        "Aurora Commerce",
			Category:     "E-commerce",
			Description:  "Migration d'une boutique vers une stack headless performante avec optimisation Lighthouse 95+.",
			ExternalLink: "https://example.com/aurora",
			CreatedAt:    time.Date(year, time.January, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "static-project-pulse",
			Title:        "Pulse Santé",
			Category:     "Application mobile",
			Description:  "Application mobile de télésuivi patient avec synchronisation temps réel et dashboards admin.",
			ExternalLink: "https://example.com/pulse",
			CreatedAt:    time.Date(year, time.February, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "static-project-studio",
			Title:        "Studio Créatif",
			Category:     "Site vitrine",
			Description:  "Refonte d'un site créatif avec animations fluides, vidéo optimisée et CMS headless.",
			ExternalLink: "https://example.com/studio",
			CreatedAt:    time.Date(year, time.March, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

// FindProject resolves a fallback project by synthetic id.
func FindProject(id string) *domain.Project {
	for _, p := range Projects() {
		if p.ID == id {
			return p
		}
	}
	return nil
}
