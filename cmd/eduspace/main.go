package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/icanacademy/eduspace/internal/cli"
	"github.com/icanacademy/eduspace/internal/db"
	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/gateway"
	"github.com/icanacademy/eduspace/internal/llm"
	"github.com/icanacademy/eduspace/internal/repository"
	"github.com/icanacademy/eduspace/internal/session"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env in the working directory, for development setups.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.eduspace/eduspace.db
	dbPath := os.Getenv("EDUSPACE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".eduspace", "eduspace.db")
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cfg := llm.LoadConfig()

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewGeminiClient(cfg, observer)

	store := session.NewStore(repository.NewSQLiteStateRepo(database))
	sess := session.New(session.Services{
		Missions:      gateway.NewMissionService(client),
		Illustrations: gateway.NewIllustrationService(client),
		Thesis:        gateway.NewThesisService(client),
		Slides:        gateway.NewSlideService(client),
		NewMentor: func(level domain.GradeLevel, mission *domain.Mission) session.Mentor {
			return gateway.NewChatSession(client, level, mission)
		},
	}, store)

	if err := sess.Rehydrate(context.Background()); err != nil {
		return err
	}

	app := &cli.App{
		Session:     sess,
		Store:       store,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}
