package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/partsunlimited-catalog/internal/application/identity"
	"github.com/jhoicas/partsunlimited-catalog/internal/application/seed"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
	"github.com/jhoicas/partsunlimited-catalog/internal/infrastructure/mongodb"
	"github.com/jhoicas/partsunlimited-catalog/internal/infrastructure/postgres"
	"github.com/jhoicas/partsunlimited-catalog/internal/infrastructure/redislock"
	"github.com/jhoicas/partsunlimited-catalog/pkg/config"
	"github.com/jhoicas/partsunlimited-catalog/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Bool("docdb", cfg.DocDB.Enabled).
		Msg("iniciando siembra")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		if errors.Is(err, domain.ErrSeedInProgress) {
			log.Warn().Err(err).Msg("otra siembra está en curso")
		} else {
			log.Error().Err(err).Msg("siembra fallida")
		}
		stop()
		os.Exit(1)
	}
	log.Info().Msg("siembra terminada")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	txRunner := postgres.NewTxRunner(pool)
	sqlSeeder := seed.NewSQLDataSeeder(txRunner, log)
	data := seed.DefaultSampleData()

	if cfg.DocDB.Enabled {
		var locker seed.Locker
		if cfg.Redis.Addr != "" {
			client, err := redislock.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				return err
			}
			defer client.Close()
			locker = redislock.New(client, cfg.Redis.LockTTL)
		} else {
			log.Warn().Msg("REDIS_ADDR vacío: siembra sin candado entre procesos")
		}

		docSeeder := seed.NewDocDBSeeder(mongodb.NewConfiguration(cfg.DocDB), sqlSeeder, locker, log)
		err := docSeeder.Seed(ctx, data)
		logReport(log, docSeeder.LastRun())
		if err != nil {
			return err
		}
	} else {
		if err := sqlSeeder.Seed(ctx, data); err != nil {
			return err
		}
	}

	if cfg.Seed.AdminEnabled() {
		if err := seedAdmin(ctx, cfg, log, postgres.NewUserRepository(pool)); err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, cfg *config.Config, log *logger.Logger, users *postgres.UserRepo) error {
	svc := identity.NewService(users, identity.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, created, err := svc.EnsureUser(ctx, identity.RegisterInput{
		UserName: cfg.Seed.AdminUserName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Name:     cfg.Seed.AdminName,
	})
	if err != nil {
		return err
	}
	log.Info().Str("user", user.UserName).Bool("created", created).Msg("usuario administrador")

	// La contraseña configurada pudo cambiarse después de la primera siembra.
	admin, err := svc.Authenticate(ctx, cfg.Seed.AdminUserName, cfg.Seed.AdminPassword)
	if err != nil {
		log.Warn().Err(err).Msg("la contraseña configurada del administrador no coincide")
		return nil
	}
	token, err := svc.IssueCredential(admin)
	if err != nil {
		return err
	}
	if _, err := svc.VerifyCredential(ctx, token); err != nil {
		return fmt.Errorf("credencial del administrador: %w", err)
	}
	log.Info().Str("user_id", admin.ID).Msg("credencial del administrador verificada")
	return nil
}

func logReport(log *logger.Logger, r seed.RunReport) {
	if !r.Terminal() {
		// la corrida falló antes de tocar el almacén documental
		return
	}
	ev := log.Info()
	if r.Stage == seed.StageFailed {
		ev = log.Error().AnErr("cause", r.Err)
	}
	stages := make([]string, len(r.History))
	for i, s := range r.History {
		stages[i] = string(s)
	}
	ev.Str("stage", string(r.Stage)).
		Strs("history", stages).
		Bool("database_created", r.DatabaseCreated).
		Bool("collection_created", r.CollectionCreated).
		Int("inserted", r.Inserted).
		Int("existing", r.Existing).
		Msg("reporte de siembra documental")
}
