package main

import (
	"fmt"
	"strings"

	"github.com/jordanlanch/namereport/pkg/cache"
	"github.com/jordanlanch/namereport/pkg/quota"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultPrefix = "cardkey:"

// cli carries the resolved settings shared by all subcommands
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	app := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "cardctl",
		Short:         "Manage name report card keys",
		Long:          "cardctl issues, inspects, tops up and revokes the card keys that gate name generation. Keys live in the same Redis the API server uses.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("redis-url", "", "Redis URL (env QUOTA_REDIS_URL or REDIS_URL)")
	flags.String("prefix", defaultPrefix, "key prefix (env QUOTA_KEY_PREFIX)")

	_ = app.v.BindPFlag("redis-url", flags.Lookup("redis-url"))
	_ = app.v.BindPFlag("prefix", flags.Lookup("prefix"))
	_ = app.v.BindEnv("redis-url", "QUOTA_REDIS_URL", "REDIS_URL")
	_ = app.v.BindEnv("prefix", "QUOTA_KEY_PREFIX")
	app.v.SetDefault("prefix", defaultPrefix)

	rootCmd.AddCommand(
		newIssueCmd(app),
		newShowCmd(app),
		newTopUpCmd(app),
		newRevokeCmd(app),
	)

	return rootCmd
}

// openStore connects to Redis. The returned func closes the connection.
func (a *cli) openStore() (*quota.RedisStore, func(), error) {
	url := strings.TrimSpace(a.v.GetString("redis-url"))
	if url == "" {
		return nil, nil, fmt.Errorf("redis URL is required: pass --redis-url or set QUOTA_REDIS_URL")
	}

	c, err := cache.NewClient(url)
	if err != nil {
		return nil, nil, err
	}

	return quota.NewRedisStore(c, a.v.GetString("prefix")), func() { _ = c.Close() }, nil
}
