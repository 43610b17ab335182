// Command storefront drives a storefront session from the terminal. The token
// is kept in the state database between runs; a guest cart lives only as long
// as one invocation.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Skotchmaster/storefront/internal/api"
	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/internal/tokenstore"
)

const usage = `usage: storefront <command> [flags]

commands:
  whoami       show the signed-in user
  login        -username NAME -password PASS
  register     -username NAME -email ADDR -password PASS [-first-name] [-last-name] [-user-type]
  logout
  cart         show the cart
  add          -product ID [-variant ID] [-quantity N]
  add-tablet   -tablet ID [-quantity N]
  update       -item ID -quantity N
  remove       -item ID
  clear
  products     [-type T] [-search Q] [-page N]
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewWithWriter(stderr, cfg.LogLevel)
	ctx = logging.IntoContext(ctx, logger)

	client, err := apiclient.NewClient(cfg.APIBaseURL)
	if err != nil {
		return err
	}
	backend := api.New(client)

	tokens, err := tokenstore.Open(ctx, cfg.StateDSN)
	if err != nil {
		return err
	}
	defer tokens.Close()

	store := session.New(backend.Auth, backend.Cart, tokens)
	if err := store.Hydrate(ctx); err != nil {
		logger.Warn("hydrate_failed", "error", err)
	}

	return cmd(ctx, &env{store: store, api: backend, out: stdout, errOut: stderr}, args[1:])
}
