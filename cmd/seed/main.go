package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/service"
	"github.com/opendev-studio/site-api/internal/infrastructure/config"
	"github.com/opendev-studio/site-api/internal/infrastructure/db/mongo"
	"github.com/opendev-studio/site-api/pkg/logger"
)

// The seed CLI bootstraps a fresh database and repairs a broken admin
// account: it creates or resets the admin credentials, forces the admin
// role, lifts any ban, marks the account verified, and idempotently inserts
// the default site content plus optional demo catalog data.
func main() {
	var (
		secret        = flag.String("secret", "", "seed secret, must match SEED_SECRET")
		adminEmail    = flag.String("admin-email", "admin@opendev.com", "admin account email")
		adminPassword = flag.String("admin-password", "", "admin password to set (required)")
		demo          = flag.Bool("demo", false, "insert demo services and projects")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *secret != cfg.SeedSecret {
		log.Fatal().Msg("seed secret mismatch, refusing to run")
	}
	if *adminPassword == "" {
		log.Fatal().Msg("-admin-password is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer client.Disconnect(context.Background())

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	users := mongo.NewUserRepository(db)
	services := mongo.NewServiceRepository(db)
	projects := mongo.NewProjectRepository(db)
	content := mongo.NewContentRepository(db)

	if err := seedAdmin(ctx, users, *adminEmail, *adminPassword, log); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}
	if err := seedContent(ctx, content, log); err != nil {
		log.Fatal().Err(err).Msg("content seed failed")
	}
	if *demo {
		if err := seedDemo(ctx, services, projects, log); err != nil {
			log.Fatal().Err(err).Msg("demo seed failed")
		}
	}

	log.Info().Msg("seed complete")
}

// seedAdmin creates the admin account, or repairs an existing one: the
// password is reset and role, ban, and verification state are forced back
// to a usable admin login.
func seedAdmin(ctx context.Context, users *mongo.UserRepository, email, password string, log zerolog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	email = service.NormalizeEmail(email)

	existing, err := users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		created, err := users.Create(ctx, &domain.User{
			Name:         "Administrateur",
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			IsVerified:   true,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		log.Info().Str("email", email).Str("id", created.ID).Msg("admin account created")
		return nil
	}
	if err != nil {
		return err
	}

	if err := users.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
		return err
	}
	if _, err := users.UpdateRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := users.UpdateBan(ctx, existing.ID, false); err != nil {
		return err
	}
	if err := users.MarkVerified(ctx, existing.ID); err != nil {
		return err
	}
	log.Info().Str("email", email).Str("id", existing.ID).Msg("admin account repaired")
	return nil
}

// seedContent inserts the default site copy if the singleton is absent.
func seedContent(ctx context.Context, content *mongo.ContentRepository, log zerolog.Logger) error {
	_, err := content.Find(ctx)
	if err == nil {
		log.Info().Msg("site content already present")
		return nil
	}
	if !errors.Is(err, domain.ErrContentNotFound) {
		return err
	}

	defaults := domain.DefaultSiteContent()
	defaults.UpdatedAt = time.Now().UTC()
	if _, err := content.Create(ctx, &defaults); err != nil {
		return err
	}
	log.Info().Msg("default site content created")
	return nil
}

// seedDemo inserts the demo catalog. Services are keyed by slug, projects
// by title; existing entries are left untouched so reruns are safe.
func seedDemo(ctx context.Context, services *mongo.ServiceRepository, projects *mongo.ProjectRepository, log zerolog.Logger) error {
	demoServices := []*domain.Service{
		{
			Title:       "Développement Web Sur Mesure",
			Description: "Sites vitrines, applications métiers et portails clients construits avec une architecture cloud moderne.",
			Slug:        "developpement-web-sur-mesure",
		},
		{
			Title:       "Applications Mobiles & PWA",
			Description: "Expériences mobiles rapides, accessibles et installables avec les Progressive Web Apps.",
			Slug:        "applications-mobiles",
		},
		{
			Title:       "E-commerce & Marketplaces",
			Description: "Catalogue, paiement sécurisé et automatisation des commandes pour booster vos ventes en ligne.",
			Slug:        "ecommerce-marketplaces",
		},
	}

	for _, s := range demoServices {
		if _, err := services.FindBySlug(ctx, s.Slug); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrServiceNotFound) {
			return err
		}
		s.CreatedAt = time.Now().UTC()
		if _, err := services.Create(ctx, s); err != nil {
			return err
		}
		log.Info().Str("slug", s.Slug).Msg("demo service created")
	}

	demoProjects := []*domain.Project{
		{
			Title:        "Aurora Commerce",
			Category:     "E-commerce",
			Description:  "Migration d'une boutique vers une stack headless performante avec optimisation Lighthouse 95+.",
			ExternalLink: "https://example.com/aurora",
		},
		{
			Title:        "Pulse Santé",
			Category:     "Application mobile",
			Description:  "Application mobile de télésuivi patient avec synchronisation temps réel et dashboards admin.",
			ExternalLink: "https://example.com/pulse",
		},
		{
			Title:        "Studio Créatif",
			Category:     "Site vitrine",
			Description:  "Refonte d'un site créatif avec animations fluides, vidéo optimisée et CMS headless.",
			ExternalLink: "https://example.com/studio",
		},
	}

	existing, err := projects.List(ctx, true)
	if err != nil {
		return err
	}
	byTitle := make(map[string]bool, len(existing))
	for _, p := range existing {
		byTitle[p.Title] = true
	}

	for _, p := range demoProjects {
		if byTitle[p.Title] {
			continue
		}
		p.CreatedAt = time.Now().UTC()
		if _, err := projects.Create(ctx, p); err != nil {
			return err
		}
		log.Info().Str("title", p.Title).Msg("demo project created")
	}
	return nil
}
