// Command createsuperuser registers a staff account with full privileges.
// Meant for operators bootstrapping an install, not for request traffic.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/merrickb/recipebox/internal/config"
	"github.com/merrickb/recipebox/internal/observability"
	"github.com/merrickb/recipebox/internal/repo/postgres"
	"github.com/merrickb/recipebox/internal/security"
)

func main() {
	email := flag.String("email", "", "email address for the new superuser")
	password := flag.String("password", "", "password for the new superuser")
	flag.Parse()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createsuperuser -email <email> -password <password>")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DBURL)

	if err != nil {
		log.Error("could not connect to database", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Error("could not ensure schema", "err", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(*password)

	if err != nil {
		log.Error("could not hash password", "err", err)
		os.Exit(1)
	}

	u, err := postgres.NewUsersRepo(pool).CreateSuperuser(ctx, *email, hash)

	if err != nil {
		log.Error("could not create superuser", "err", err)
		os.Exit(1)
	}

	log.Info("superuser created", "id", u.ID, "email", u.Email)
}
