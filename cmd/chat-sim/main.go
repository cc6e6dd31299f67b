// Command chat-sim demonstrates the sliding-window rate limiter on a
// simulated chat message flow: a handful of users send paced messages,
// each message is admitted or rejected, traffic pauses, then a second
// burst follows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/rangekit/rangecache/slidingwindow"
)

func main() {
	var (
		window      = flag.Duration("window", 10*time.Second, "sliding window size")
		maxRequests = flag.Int("max-requests", 1, "messages allowed per user per window")
		users       = flag.Int("users", 5, "number of simulated users")
		messages    = flag.Int("messages", 10, "messages per burst")
		pace        = flag.Float64("rate", 2, "simulated messages per second")
		quiet       = flag.Duration("quiet", 4*time.Second, "pause between the two bursts")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	limiter, err := slidingwindow.NewLimiter(*window, *maxRequests)
	if err != nil {
		logger.Error("bad limiter config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pacer := rate.NewLimiter(rate.Limit(*pace), 1)

	logger.Info("simulating message flow",
		"window", *window, "max_requests", *maxRequests, "users", *users)

	fmt.Println("=== Message flow ===")
	runBurst(ctx, limiter, pacer, *users, 1, *messages)

	logger.Info("waiting for window to clear", "quiet", *quiet)
	time.Sleep(*quiet)

	fmt.Println("=== New series of messages after waiting ===")
	runBurst(ctx, limiter, pacer, *users, *messages+1, *messages)
}

func runBurst(ctx context.Context, limiter *slidingwindow.Limiter, pacer *rate.Limiter, users, first, count int) {
	for id := first; id < first+count; id++ {
		if err := pacer.Wait(ctx); err != nil {
			return
		}

		userID := fmt.Sprintf("user-%d", id%users+1)
		if limiter.Allow(userID) {
			fmt.Printf("Message %2d | %s | ok\n", id, userID)
			continue
		}
		wait := limiter.TimeUntilAllowed(userID)
		fmt.Printf("Message %2d | %s | rejected (wait %.1fs)\n", id, userID, wait.Seconds())
	}
}
