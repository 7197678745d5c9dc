package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmehra/learnly/internal/api"
	"github.com/dmehra/learnly/internal/llm"
	"github.com/dmehra/learnly/internal/premium"
	"github.com/dmehra/learnly/internal/store"
)

// newClient builds the learning-service client from LEARNLY_* env vars.
func newClient() (*api.Client, error) {
	cfg := api.ConfigFromEnv()
	client, err := api.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("configure learning service client: %w", err)
	}
	return client, nil
}

// openStore opens the local event database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newGateway picks the premium path. With LEARNLY_PREMIUM=direct and a
// configured LLM key, AI features run against the user's own provider;
// otherwise they go through the learning service.
func newGateway(cmd *cobra.Command, client *api.Client, st *store.Store) premium.Gateway {
	if os.Getenv("LEARNLY_PREMIUM") == "direct" {
		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.Events())
		if err == nil {
			return premium.NewDirectGateway(provider, st.Stats(), premium.DefaultDirectConfig())
		}
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Falling back to service-side AI features.")
	}
	return premium.NewAPIGateway(client)
}
