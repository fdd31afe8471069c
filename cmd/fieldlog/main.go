package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/fieldlog/internal/cli"
	"github.com/alexanderramin/fieldlog/internal/cli/formatter"
	"github.com/alexanderramin/fieldlog/internal/config"
	"github.com/alexanderramin/fieldlog/internal/db"
	"github.com/alexanderramin/fieldlog/internal/keyring"
	"github.com/alexanderramin/fieldlog/internal/logger"
	"github.com/alexanderramin/fieldlog/internal/repository"
	"github.com/alexanderramin/fieldlog/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		cli.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	if err := cfg.ResolveDSN(keyring.GetConnectionString); err != nil {
		return err
	}

	database, err := db.Open(cfg.DB.Driver, cfg.DB.Path, cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database ready", "driver", database.Dialect)

	// Wire repositories
	conn := database.Conn()
	placementRepo := repository.NewSQLPlacementRepo(conn)
	enrollmentRepo := repository.NewSQLEnrollmentRepo(conn)
	entryRepo := repository.NewSQLLogEntryRepo(conn)
	cursorRepo := repository.NewSQLCursorRepo(conn)

	// Wire unit of work for transactional imports
	uow := db.NewSQLUnitOfWork(database)

	obs := service.WithObserver(service.NewLogUseCaseObserver(logger.Logger))
	interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)
	formatter.SetColorEnabled(isTerminal(os.Stdout))

	app := &cli.App{
		Placements:  service.NewPlacementService(placementRepo, uow, obs),
		Enrollments: service.NewEnrollmentService(placementRepo, enrollmentRepo, obs),
		Logs:        service.NewFieldLogService(placementRepo, enrollmentRepo, entryRepo, obs),
		Timeline:    service.NewTimelineService(placementRepo, entryRepo, obs),
		Review:      service.NewReviewService(entryRepo, cursorRepo, obs),
		Progress:    service.NewProgressService(placementRepo, entryRepo),
		User:        cfg.User,
		Location:    loc,
		Interactive: interactive,
	}

	return cli.NewRootCmd(app).Execute()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
