package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gorecipes/config"
	"gorecipes/internal/domain"
	"gorecipes/internal/export"
	"gorecipes/internal/session"
)

// newRootCmd monta a árvore de comandos. As dependências são criadas no PersistentPreRunE.
func newRootCmd() *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:           "gorecipes",
		Short:         "Browse recipes and manage your session from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(config.LoadConfig())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.log.Sync()
			}
		},
	}

	get := func() *app { return a }
	root.AddCommand(
		newLoginCmd(get),
		newRegisterCmd(get),
		newLogoutCmd(get),
		newWhoamiCmd(get),
		newRecipeCmd(get),
		newExportCmd(get),
	)
	return root
}

func newLoginCmd(a func() *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("GORECIPES_PASSWORD")
			}
			record, err := a().users.Login(cmd.Context(), domain.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", displayName(record.User))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or GORECIPES_PASSWORD)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd(a func() *app) *cobra.Command {
	var req domain.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("GORECIPES_PASSWORD")
			}
			record, err := a().users.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			if record.Token == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Account created. Run 'gorecipes login' to sign in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Logged in as %s\n", displayName(record.User))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (or GORECIPES_PASSWORD)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a().users.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a func() *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printSession(out, a().session)
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchSession(ctx, out, a().session)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and print session changes made by other processes")
	return cmd
}

// watchSession imprime o estado a cada mudança externa até ctx terminar.
func watchSession(ctx context.Context, out io.Writer, sess *session.Store) error {
	events, cancel := sess.Subscribe()
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- sess.Watch(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return <-errc
		case err := <-errc:
			return err
		case ev := <-events:
			if ev.Origin != session.OriginExternal {
				continue
			}
			fmt.Fprintf(out, "session changed (%s)\n", ev.Key)
			printSession(out, sess)
		}
	}
}

func printSession(out io.Writer, sess *session.Store) {
	if !sess.IsLoggedIn() {
		fmt.Fprintln(out, "Not logged in")
		return
	}
	u, _ := sess.CurrentUser()
	fmt.Fprintf(out, "Logged in as %s\n", displayName(u))
	claims, ok := sess.Claims()
	switch {
	case !ok || claims.ExpiresAt.IsZero():
	case claims.Expired(time.Now()):
		fmt.Fprintf(out, "Token expired %s (run 'gorecipes login' again)\n", claims.ExpiresAt.Format("2006-01-02 15:04"))
	default:
		fmt.Fprintf(out, "Token expires %s\n", claims.ExpiresAt.Format("2006-01-02 15:04"))
	}
}

func newRecipeCmd(a func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recipe <id>",
		Short: "Print a recipe from the API, the curated set or the mock collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, ok := a().recipes.Resolve(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("recipe not found: %s", args[0])
			}
			printRecipe(cmd.OutOrStdout(), recipe)
			return nil
		},
	}
}

func printRecipe(out io.Writer, r domain.Recipe) {
	fmt.Fprintf(out, "%s [%s]\n", r.Title, r.Source)
	fmt.Fprintf(out, "%s\n\n", r.Description)
	fmt.Fprintf(out, "Category: %s | Prep: %d min | Cook: %d min | Servings: %d | Difficulty: %s\n\n",
		r.Category, r.PrepTimeMinutes, r.CookingTimeMinutes, r.Servings, r.Difficulty)

	fmt.Fprintln(out, "Ingredients:")
	for _, in := range r.Ingredients {
		fmt.Fprintf(out, "  - %s\n", in.String())
	}
	fmt.Fprintln(out, "\nInstructions:")
	for _, step := range r.InstructionSteps {
		fmt.Fprintf(out, "  %s\n", step)
	}
}

func newExportCmd(a func() *app) *cobra.Command {
	var out string
	var fromCatalog bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your recipes (or the local catalog) to .csv or .xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cards []domain.RecipeCard
			if fromCatalog {
				cards = a().recipes.Catalog()
			} else {
				if !a().session.IsLoggedIn() {
					return fmt.Errorf("not logged in (use --catalog to export the local collection)")
				}
				var err error
				if cards, err = a().recipes.UserRecipes(cmd.Context()); err != nil {
					return err
				}
			}
			if err := export.Write(out, cards); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recipes to %s\n", len(cards), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (.csv or .xlsx)")
	cmd.Flags().BoolVar(&fromCatalog, "catalog", false, "export the curated and mock recipes instead of yours")
	cmd.MarkFlagRequired("out")
	return cmd
}

func displayName(u domain.User) string {
	switch {
	case strings.TrimSpace(u.Name) != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return "unknown user"
	}
}
