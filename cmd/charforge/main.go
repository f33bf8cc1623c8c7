package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/charforge/charforge/internal/clients/dnd5e"
	"github.com/charforge/charforge/internal/config"
	"github.com/charforge/charforge/internal/domain/shared"
	"github.com/charforge/charforge/internal/repositories/sessions"
	"github.com/charforge/charforge/internal/rules"
	"github.com/charforge/charforge/internal/services/builder"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	rulesSource, err := buildRulesSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up rules source: %v", err)
	}

	defaults := rules.StandardDefaults()
	if cfg.Rules.DefaultsPath != "" {
		defaults, err = rules.LoadDefaults(cfg.Rules.DefaultsPath)
		if err != nil {
			log.Fatalf("Failed to load ruleset defaults from %s: %v", cfg.Rules.DefaultsPath, err)
		}
		log.Printf("Loaded ruleset defaults from %s", cfg.Rules.DefaultsPath)
	}

	repo := buildRepository(ctx, cfg)

	svc := builder.NewService(&builder.ServiceConfig{
		RulesSource: rulesSource,
		Repository:  repo,
		Defaults:    defaults.Grants,
	})

	if err := runDemo(ctx, svc, rulesSource); err != nil {
		log.Fatalf("Build run failed: %v", err)
	}
}

// buildRulesSource prefers a local rules directory; without one it falls
// back to the remote dnd5eapi.co API.
func buildRulesSource(ctx context.Context, cfg *config.Config) (rules.Source, error) {
	if cfg.Rules.Dir != "" {
		log.Printf("Loading rules content from %s", cfg.Rules.Dir)
		return rules.NewFileSource(ctx, cfg.Rules.Dir)
	}

	log.Println("Using the remote dnd5eapi.co rules source")
	return dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	})
}

// buildRepository connects to Redis when it is reachable and otherwise
// falls back to the in-memory store.
func buildRepository(ctx context.Context, cfg *config.Config) sessions.Repository {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
		log.Println("Falling back to in-memory session store")
		_ = client.Close()
		return sessions.NewInMemoryRepository()
	}

	log.Printf("Using Redis at %s for session persistence", cfg.Redis.Addr)
	return sessions.NewRedis(client)
}

// runDemo walks one build end to end: pick a race and class, make an
// optional selection, finalize, and print the sheet.
func runDemo(ctx context.Context, svc builder.Service, source rules.Source) error {
	ownerID := os.Getenv("CHARFORGE_OWNER")
	if ownerID == "" {
		ownerID = "demo-user"
	}

	output, err := svc.CreateSession(ctx, &builder.CreateSessionInput{
		OwnerID: ownerID,
		Name:    "Smoke Test",
	})
	if err != nil {
		return err
	}
	session := output.Session
	log.Printf("Opened session %s for %s", session.ID, ownerID)

	races, err := source.ListRaces(ctx)
	if err != nil {
		return err
	}
	if len(races) > 0 {
		if _, err := svc.SetRace(ctx, &builder.SetRaceInput{SessionID: session.ID, RaceKey: races[0].Key}); err != nil {
			return err
		}
		log.Printf("Applied race %s", races[0].Name)
	}

	classes, err := source.ListClasses(ctx)
	if err != nil {
		return err
	}
	if len(classes) > 0 {
		if _, err := svc.SetClass(ctx, &builder.SetClassInput{SessionID: session.ID, ClassKey: classes[0].Key}); err != nil {
			return err
		}
		log.Printf("Applied class %s", classes[0].Name)
	}

	if _, err := svc.RollBaseScores(ctx, &builder.RollBaseScoresInput{SessionID: session.ID}); err != nil {
		return err
	}
	log.Printf("Rolled base ability scores")

	// Select the first available option on any open track
	sheet, err := svc.GetSheet(ctx, session.ID)
	if err != nil {
		return err
	}
	for category, track := range sheet.Choices {
		if err := selectFirstEligible(ctx, svc, session.ID, category, track.Options); err != nil {
			return err
		}
	}

	if _, err := svc.FinalizeSession(ctx, session.ID); err != nil {
		return err
	}

	sheet, err = svc.GetSheet(ctx, session.ID)
	if err != nil {
		return err
	}
	printSheet(sheet)

	return nil
}

// selectFirstEligible toggles options until one lands, trying each axis in
// turn. Rejections are expected; a fixed grant or full track just means we
// move on.
func selectFirstEligible(ctx context.Context, svc builder.Service, sessionID string, category shared.ProficiencyCategory, options []string) error {
	for _, option := range options {
		for _, axis := range shared.Axes {
			result, err := svc.ToggleSelection(ctx, &builder.ToggleSelectionInput{
				SessionID: sessionID,
				Category:  category,
				Axis:      axis,
				Name:      option,
			})
			if err != nil {
				return err
			}
			if result.Selected {
				log.Printf("Selected %s (%s)", option, category)
				return nil
			}
		}
	}
	return nil
}

func printSheet(sheet *builder.Sheet) {
	fmt.Printf("\n%s (%s)\n", sheet.Name, sheet.Status)
	fmt.Printf("Race: %s  Class: %s  Background: %s\n",
		orDash(sheet.RaceKey), orDash(sheet.ClassKey), orDash(sheet.BackgroundKey))

	fmt.Println("\nAbilities:")
	for _, line := range sheet.Abilities {
		fmt.Printf("  %-13s %2d (base %d, bonus %+d)\n", line.Ability, line.Total, line.Base, line.Bonus)
	}

	fmt.Println("\nProficiencies:")
	for _, category := range shared.Categories {
		lines, ok := sheet.Proficiencies[category]
		if !ok {
			continue
		}
		fmt.Printf("  %s:\n", category)
		for _, line := range lines {
			fmt.Printf("    %s (from %v)\n", line.Name, line.Sources)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
