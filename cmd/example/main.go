// Command example searches Twitter from the terminal. Credentials come from
// the environment (optionally a .env file):
//
//	TWITTER_APP_KEY, TWITTER_APP_SECRET,
//	TWITTER_OAUTH_TOKEN, TWITTER_OAUTH_TOKEN_SECRET
//
// With -authorize it instead walks the PIN-based three-legged OAuth flow and
// prints the resulting user tokens.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/guerrerocarlos/twython"
)

func main() {
	query := flag.String("query", "golang", "search query")
	count := flag.Int("count", 20, "maximum number of tweets to print")
	envFile := flag.String("env-file", "", "optional .env file with credentials")
	authorize := flag.Bool("authorize", false, "run the three-legged OAuth flow instead of searching")
	proxy := flag.String("proxy", "", "optional proxy URL")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			slog.Error("load env file", slog.String("path", *envFile), slog.Any("error", err))
			os.Exit(1)
		}
	}

	client, err := twython.NewClient(twython.ClientConfig{
		AppKey:           os.Getenv("TWITTER_APP_KEY"),
		AppSecret:        os.Getenv("TWITTER_APP_SECRET"),
		OAuthToken:       os.Getenv("TWITTER_OAUTH_TOKEN"),
		OAuthTokenSecret: os.Getenv("TWITTER_OAUTH_TOKEN_SECRET"),
		Proxy:            *proxy,
	})
	if err != nil {
		slog.Error("create client", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	if *authorize {
		if err := runAuthorize(ctx, client); err != nil {
			slog.Error("authorization flow failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	if err := runSearch(ctx, client, *query, *count); err != nil {
		slog.Error("search failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// runSearch fetches one page with rate-limit-aware retries, then streams the
// rest through the paginating generator. The library itself never retries;
// that policy lives here with the caller.
func runSearch(ctx context.Context, client *twython.Client, query string, count int) error {
	// Probe call, retried with the server's retry-after hint when we are rate
	// limited, exponential backoff otherwise.
	policy := &hintedBackOff{fallback: backoff.NewExponentialBackOff()}
	operation := func() error {
		_, err := client.Search(ctx, twython.Params{"q": query, "count": 1})
		if err == nil {
			return nil
		}
		var rateErr *twython.RateLimitError
		if errors.As(err, &rateErr) {
			if rateErr.RetryAfter > 0 {
				slog.Warn("rate limited, backing off", slog.Int("retry_after", rateErr.RetryAfter))
				policy.hint = time.Duration(rateErr.RetryAfter) * time.Second
			}
			return err // retryable
		}
		return backoff.Permanent(err)
	}
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return err
	}

	printed := 0
	for tweet, err := range client.SearchGen(ctx, query, nil) {
		if err != nil {
			return err
		}
		fmt.Printf("%v: %v\n", tweet["id_str"], tweet["text"])
		printed++
		if printed >= count {
			break
		}
	}

	if remaining, ok, _ := client.LastCallHeader("x-rate-limit-remaining"); ok {
		slog.Debug("rate limit budget", slog.String("remaining", remaining))
	}
	return nil
}

// hintedBackOff sleeps the server-provided retry-after duration when one was
// captured, deferring to exponential delays otherwise. The hint is consumed on
// use so a retry without a fresh hint falls back again.
type hintedBackOff struct {
	fallback backoff.BackOff
	hint     time.Duration
}

func (b *hintedBackOff) NextBackOff() time.Duration {
	if b.hint > 0 {
		d := b.hint
		b.hint = 0
		return d
	}
	return b.fallback.NextBackOff()
}

func (b *hintedBackOff) Reset() {
	b.hint = 0
	b.fallback.Reset()
}

// runAuthorize walks the PIN-based OAuth dance on stdin/stdout.
func runAuthorize(ctx context.Context, client *twython.Client) error {
	tokens, err := client.AuthenticationTokens(ctx, "", false, "")
	if err != nil {
		return err
	}

	fmt.Println("Visit this URL and authorize the application:")
	fmt.Println("  " + tokens["auth_url"])
	fmt.Print("Enter the PIN: ")

	reader := bufio.NewReader(os.Stdin)
	pin, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read pin: %w", err)
	}

	authorized, err := client.AuthorizedTokens(ctx, strings.TrimSpace(pin))
	if err != nil {
		return err
	}

	fmt.Println("TWITTER_OAUTH_TOKEN=" + authorized["oauth_token"])
	fmt.Println("TWITTER_OAUTH_TOKEN_SECRET=" + authorized["oauth_token_secret"])
	return nil
}
