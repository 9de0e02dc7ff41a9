// Command grocidish is a small demo shell over the client library: it logs
// in, resolves the landing route the mobile app would navigate to, and
// prints the recommendation and grocery state.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"grocidish-client/application/navigation"
	"grocidish-client/application/state"
	"grocidish-client/di"
	"grocidish-client/domain"
	"grocidish-client/infrastructure/config"
	apperrors "grocidish-client/pkg/errors"
)

func main() {
	var (
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		budget   = flag.Float64("budget", 30000, "grocery budget in PKR")
		command  = flag.String("cmd", "login", "one of: login, recommend, grocery, logout")
	)
	flag.Parse()

	app, err := di.InitializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	defer func() {
		if err := app.Shutdown(context.Background()); err != nil {
			app.Logger.Warn("Shutdown incomplete", zap.Error(err))
		}
	}()

	if path := os.Getenv("GROCIDISH_DYNAMIC_CONFIG"); path != "" {
		watcher, err := config.NewWatcher(path, app.Logger)
		if err != nil {
			app.Logger.Warn("Dynamic config unavailable", zap.Error(err))
		} else {
			watcher.OnChange(func(dc *config.DynamicConfig) {
				if dc.Timeouts.RequestSeconds > 0 {
					app.Client.SetTimeout(time.Duration(dc.Timeouts.RequestSeconds) * time.Second)
				}
			})
			watcher.Start()
			defer watcher.Stop()
		}
	}

	if restored, err := app.Slices.Auth.RestoreSession(ctx); err != nil {
		app.Logger.Warn("Session restore failed", zap.Error(err))
	} else if restored {
		app.Logger.Info("Session restored from storage")
	}

	if err := run(ctx, app, *command, *email, *password, *budget); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", apperrors.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, app *di.App, command, email, password string, budget float64) error {
	switch command {
	case "login":
		return login(ctx, app, email, password)
	case "recommend":
		return recommend(ctx, app)
	case "grocery":
		return grocery(ctx, app, budget)
	case "logout":
		return app.Slices.Auth.Logout(ctx)
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown command %q", command))
	}
}

func login(ctx context.Context, app *di.App, email, password string) error {
	err := app.Slices.Auth.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	hasFamily, err := app.Slices.Auth.HasFamily(ctx)
	if err != nil {
		return err
	}

	hasProfile := false
	if hasFamily {
		if hasProfile, err = app.Slices.Auth.HasHealthProfile(ctx); err != nil {
			return err
		}
		if hasProfile {
			if err := app.Slices.Auth.FetchRole(ctx); err != nil {
				return err
			}
		}
	}

	route := navigation.ResolveLanding(hasFamily, hasProfile)
	fmt.Printf("logged in; landing route: %s\n", route)
	return nil
}

func recommend(ctx context.Context, app *di.App) error {
	if err := app.Slices.Recommendation.Load(ctx); err != nil {
		return err
	}

	snapshot := app.Store.Snapshot().Recommendation
	printRecommendations(snapshot)
	return nil
}

func printRecommendations(snapshot state.RecommendationState) {
	for _, mt := range domain.MealTypes() {
		recipes := snapshot.Sets[mt]
		if len(recipes) == 0 {
			continue
		}
		fmt.Printf("%s:\n", mt)
		for _, recipe := range recipes {
			fmt.Printf("  - %s (%.0f kcal/serving)\n", recipe.Name, recipe.CaloriesPerServing)
		}
	}
	if snapshot.ButtonsDisabled {
		fmt.Println("meals already selected for today")
	}
}

func grocery(ctx context.Context, app *di.App, budget float64) error {
	if err := app.Slices.Grocery.GenerateGroceryList(ctx, budget); err != nil {
		return err
	}

	list := app.Store.Snapshot().Grocery.List
	if list == nil {
		return nil
	}
	fmt.Printf("grocery list within %.0f PKR:\n", list.Budget)
	for category, items := range list.GroceryList {
		fmt.Printf("%s:\n", category)
		for name, item := range items {
			fmt.Printf("  - %s (%s, %s): %.0f PKR\n", name, item.Brand, item.Quantity, item.EstimatedPrice)
		}
	}
	return nil
}
