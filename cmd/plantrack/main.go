package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/plantrack/internal/cli"
	"github.com/alexanderramin/plantrack/internal/config"
	"github.com/alexanderramin/plantrack/internal/db"
	"github.com/alexanderramin/plantrack/internal/planning"
	"github.com/alexanderramin/plantrack/internal/repository"
	"github.com/alexanderramin/plantrack/internal/seed"
	"github.com/alexanderramin/plantrack/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Directory comes from the seed file, or the embedded demo roster.
	seedFile, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}
	users, err := seedFile.DomainUsers()
	if err != nil {
		return err
	}
	userRepo, err := repository.NewMemoryUserRepo(users)
	if err != nil {
		return err
	}

	var planRepo repository.PlanRepo
	switch cfg.Store {
	case config.StoreSQLite:
		database, err := db.OpenDB(db.MemoryDSN)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		planRepo = repository.NewSQLitePlanRepo(database)
	default:
		planRepo = repository.NewMemoryPlanRepo()
	}

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	mutator := planning.NewMutator(planning.NewClockIDs(time.Now), cfg.Locale)
	plans := service.NewPlanService(planRepo, userRepo, mutator, observers...)

	if err := seed.Apply(context.Background(), plans, seedFile, seed.Env{
		Users:    users,
		Now:      time.Now(),
		Location: loc,
		Locale:   cfg.Locale,
	}); err != nil {
		return fmt.Errorf("seeding plans: %w", err)
	}

	app := &cli.App{
		Plans:       plans,
		Directory:   service.NewDirectoryService(userRepo, observers...),
		Dashboard:   service.NewDashboardService(planRepo, userRepo, time.Now, cfg.Locale, observers...),
		Clock:       time.Now,
		Location:    loc,
		HistoryPath: cli.DefaultHistoryPath(),
	}

	// Nothing persists between processes, so a bare invocation on a terminal
	// opens the shell where the seeded data can be worked with.
	if len(os.Args) == 1 && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return cli.RunShell(app)
	}
	return cli.NewRootCmd(app).Execute()
}

func isTerminal(f interface{ Fd() uintptr }) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
