package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"codeberg.org/algrv/playground/internal/auth"
	"codeberg.org/algrv/playground/internal/cache"
	"github.com/spf13/cobra"
)

const defaultRedisURL = "redis://localhost:6379"

// the ttl only applies to writes, which cachectl never does
func openCache(redisURL string) (*cache.SessionCache, error) {
	return cache.NewSessionCache(redisURL, 0)
}

func newRootCmd() *cobra.Command {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = defaultRedisURL
	}

	root := &cobra.Command{
		Use:           "cachectl",
		Short:         "Inspect and maintain the session cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&redisURL, "redis-url", redisURL, "redis connection url")

	root.AddCommand(
		newListCmd(&redisURL),
		newShowCmd(&redisURL),
		newEvictCmd(&redisURL),
		newTokenCmd(),
	)

	return root
}

func newListCmd(redisURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessionCache, err := openCache(*redisURL)
			if err != nil {
				return err
			}
			defer sessionCache.Close() //nolint:errcheck // cli exit

			return listSessions(cmd.Context(), cmd, sessionCache)
		},
	}
}

func listSessions(ctx context.Context, cmd *cobra.Command, sessionCache *cache.SessionCache) error {
	entries, err := sessionCache.List(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no cached sessions") //nolint:errcheck // cli output
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tOWNER\tMESSAGES\tJSX\tCSS\tUPDATED\tTTL\tBYTES") //nolint:errcheck // tabwriter buffers

	for _, entry := range entries {
		session, err := sessionCache.Get(ctx, entry.SessionID)

		switch {
		case errors.Is(err, cache.ErrCacheMiss):
			// expired between scan and read
			continue
		case errors.Is(err, cache.ErrCacheUnavailable):
			return err
		case err != nil:
			fmt.Fprintf(w, "%s\t(unreadable)\t-\t-\t-\t-\t%s\t%d\n", //nolint:errcheck // tabwriter buffers
				entry.SessionID, formatTTL(entry.TTL), entry.Size)
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%d\n", //nolint:errcheck // tabwriter buffers
			session.ID,
			session.OwnerID,
			len(session.Chat),
			yesNo(session.Code.JSX != ""),
			yesNo(session.Code.CSS != ""),
			session.UpdatedAt.Format(time.RFC3339),
			formatTTL(entry.TTL),
			entry.Size,
		)
	}

	return w.Flush()
}

func newShowCmd(redisURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print a cached session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionCache, err := openCache(*redisURL)
			if err != nil {
				return err
			}
			defer sessionCache.Close() //nolint:errcheck // cli exit

			raw, err := sessionCache.GetRaw(cmd.Context(), args[0])
			if errors.Is(err, cache.ErrCacheMiss) {
				return fmt.Errorf("session %s is not cached", args[0])
			}

			if err != nil {
				return err
			}

			var out bytes.Buffer
			if err := json.Indent(&out, raw, "", "  "); err != nil {
				// print unreadable payloads as-is
				fmt.Fprintln(cmd.OutOrStdout(), string(raw)) //nolint:errcheck // cli output
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), out.String()) //nolint:errcheck // cli output
			return nil
		},
	}
}

func newEvictCmd(redisURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "evict <session-id>...",
		Short: "Remove sessions from the cache; the next read repopulates them from the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionCache, err := openCache(*redisURL)
			if err != nil {
				return err
			}
			defer sessionCache.Close() //nolint:errcheck // cli exit

			for _, sessionID := range args {
				if err := sessionCache.Evict(cmd.Context(), sessionID); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "evicted %s\n", sessionID) //nolint:errcheck // cli output
			}

			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id> [email]",
		Short: "Mint a development bearer token signed with JWT_SECRET",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := ""
			if len(args) == 2 {
				email = args[1]
			}

			token, err := auth.GenerateJWT(args[0], email)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token) //nolint:errcheck // cli output
			return nil
		},
	}
}

func formatTTL(ttl time.Duration) string {
	// redis reports -1 for keys without expiry
	if ttl < 0 {
		return "none"
	}

	return ttl.Round(time.Second).String()
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}

	return "no"
}
