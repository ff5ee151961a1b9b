package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jordanlanch/namereport/pkg/quota"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

// cardKey trims surrounding whitespace from a key argument and rejects blanks
func cardKey(arg string) (string, error) {
	key := strings.TrimSpace(arg)
	if key == "" {
		return "", fmt.Errorf("card key must not be empty")
	}
	return key, nil
}

func newIssueCmd(app *cli) *cobra.Command {
	var (
		uses  int64
		count int
	)

	cmd := &cobra.Command{
		Use:   "issue [key]",
		Short: "Issue new card keys",
		Long:  "Issue a card key with a number of uses. Without a key argument, --count random keys are generated.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && count != 1 {
				return fmt.Errorf("--count cannot be combined with an explicit key")
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			var keys []string
			if len(args) == 1 {
				key, err := cardKey(args[0])
				if err != nil {
					return err
				}
				keys = append(keys, key)
			} else {
				for i := 0; i < count; i++ {
					keys = append(keys, ulid.Make().String())
				}
			}

			store, closeStore, err := app.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			for _, key := range keys {
				if err := store.Issue(cmd.Context(), key, uses); err != nil {
					if errors.Is(err, quota.ErrRecordExists) {
						return fmt.Errorf("card key %s already exists; use topup to add uses", key)
					}
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", key, uses); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&uses, "uses", 10, "number of generations the key allows")
	cmd.Flags().IntVar(&count, "count", 1, "number of random keys to generate")

	return cmd
}

func newShowCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Show remaining uses for a card key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cardKey(args[0])
			if err != nil {
				return err
			}

			store, closeStore, err := app.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			remaining, found, err := store.Get(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("card key %s not found", key)
			}

			state := "active"
			if remaining <= 0 {
				state = "exhausted"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "key: %s\nremaining: %d\nstate: %s\n", key, remaining, state)
			return err
		},
	}
}

func newTopUpCmd(app *cli) *cobra.Command {
	var uses int64

	cmd := &cobra.Command{
		Use:   "topup <key>",
		Short: "Add uses to an existing card key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cardKey(args[0])
			if err != nil {
				return err
			}

			store, closeStore, err := app.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			remaining, err := store.TopUp(cmd.Context(), key, uses)
			if errors.Is(err, quota.ErrRecordNotFound) {
				return fmt.Errorf("card key %s not found", key)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "key: %s\nremaining: %d\n", key, remaining)
			return err
		},
	}

	cmd.Flags().Int64Var(&uses, "uses", 0, "number of uses to add")
	_ = cmd.MarkFlagRequired("uses")

	return cmd
}

func newRevokeCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <key>",
		Short: "Delete a card key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cardKey(args[0])
			if err != nil {
				return err
			}

			store, closeStore, err := app.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Revoke(cmd.Context(), key); err != nil {
				if errors.Is(err, quota.ErrRecordNotFound) {
					return fmt.Errorf("card key %s not found", key)
				}
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", key)
			return err
		},
	}
}
