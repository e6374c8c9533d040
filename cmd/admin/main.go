// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/carterperez-dev/wedding-backend/internal/asset"
	"github.com/carterperez-dev/wedding-backend/internal/auth"
	"github.com/carterperez-dev/wedding-backend/internal/catalog"
	"github.com/carterperez-dev/wedding-backend/internal/config"
	"github.com/carterperez-dev/wedding-backend/internal/core"
	"github.com/carterperez-dev/wedding-backend/internal/siteprofile"
	"github.com/carterperez-dev/wedding-backend/internal/user"
)

const usage = `usage: admin <command> [flags]

commands:
  create-user     provision an admin account
  generate-keys   write a new ES256 key pair for session tokens
  migrate         apply database migrations
  sweep-uploads   delete uploads no row references
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}

	switch args[0] {
	case "create-user":
		return createUser(ctx, args[1:], stdin, stdout)
	case "generate-keys":
		return generateKeys(args[1:], stdout)
	case "migrate":
		return migrate(ctx, args[1:], stdout)
	case "sweep-uploads":
		return sweepUploads(ctx, args[1:], stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

func createUser(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "login email")
	fromStdin := fs.Bool("password-stdin", false, "read the password from stdin")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if *name == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "-name and -email are required")
		fs.PrintDefaults()
		return errUsage
	}

	password, err := readNewPassword(stdin, stdout, *fromStdin)
	if err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	svc := user.NewService(user.NewRepository(db.DB))
	u, err := svc.Provision(ctx, user.ProvisionInput{
		Name:     *name,
		Email:    *email,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "created user %d (%s)\n", u.ID, u.Email)
	return nil
}

func generateKeys(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate-keys", flag.ContinueOnError)
	private := fs.String("private", "keys/private.pem", "private key output path")
	public := fs.String("public", "keys/public.pem", "public key output path")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := auth.GenerateKeyPair(*private, *public); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %s and %s\n", *private, *public)
	return nil
}

func migrate(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "migrations applied")
	return nil
}

func sweepUploads(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("sweep-uploads", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	storage, err := asset.NewStorage(ctx, cfg.Uploads)
	if err != nil {
		return err
	}
	assets := asset.NewManager(storage, asset.ManagerConfig{
		URLPrefix: cfg.Uploads.URLPrefix,
		BaseURL:   cfg.Uploads.BaseURL(cfg.Server),
	}, nil)

	reconciler := asset.NewReconciler(
		assets,
		cfg.Uploads.OrphanGrace,
		nil,
		catalog.NewService(catalog.NewRepository(db.DB), assets, nil),
		siteprofile.NewService(siteprofile.NewRepository(db.DB), assets, nil),
	)

	result, err := reconciler.Sweep(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "scanned %d, deleted %d, failed %d\n",
		result.Scanned, result.Deleted, result.Failed)
	return nil
}
