package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/hamed0406/dashfetch/internal/config"
	"github.com/hamed0406/dashfetch/internal/dashboard"
	"github.com/hamed0406/dashfetch/internal/domain"
	"github.com/hamed0406/dashfetch/internal/fetch"
)

func main() {
	cfg := config.Load()

	modeFlag := flag.String("mode", "parallel", "fetch strategy: sequential, parallel or compare")
	user := flag.Int("user", cfg.UserID, "user whose dashboard to fetch")
	limit := flag.Int("limit", cfg.PostsLimit, "max posts and todos to fetch (0 = all)")
	base := flag.String("base", cfg.BaseURL, "upstream API root")
	timeoutMS := flag.Int("timeout-ms", int(cfg.HTTPTimeout/time.Millisecond), "per-request timeout in milliseconds")
	flag.Parse()

	fetcher := fetch.NewHTTPFetcher(*base, time.Duration(*timeoutMS)*time.Millisecond)
	agg := dashboard.New(nil, fetcher)
	reqs := dashboard.Requests(*user, *limit, *limit)

	ctx := context.Background()

	if *modeFlag == "compare" {
		compareModes(ctx, agg, reqs)
		return
	}

	mode, err := domain.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	out, err := agg.Run(ctx, mode, reqs)
	if err != nil {
		reportFailure(err)
	}

	printDashboard(out)
	printTimings(out)
}

func reportFailure(err error) {
	if ff, ok := domain.AsFetchFailure(err); ok {
		fmt.Fprintf(os.Stderr, "fetch %s failed (%s): %v\n", ff.Resource, ff.Kind, err)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

func printDashboard(out domain.AggregateResult) {
	u, err := out.Results[domain.ResourceUser].User()
	if err == nil {
		fmt.Printf("Dashboard for %s <%s>\n\n", u.Name, u.Email)
	}

	if posts, err := out.Results[domain.ResourcePosts].Posts(); err == nil {
		fmt.Printf("Posts (%d):\n", len(posts))
		for _, p := range posts {
			fmt.Printf("  - %s\n", p.Title)
		}
		fmt.Println()
	}

	if todos, err := out.Results[domain.ResourceTodos].Todos(); err == nil {
		fmt.Printf("Todos (%d):\n", len(todos))
		for _, td := range todos {
			mark := " "
			if td.Completed {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\n", mark, td.Title)
		}
		fmt.Println()
	}
}

func printTimings(out domain.AggregateResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Resource", "Elapsed (ms)"})
	for _, name := range []domain.ResourceName{domain.ResourceUser, domain.ResourcePosts, domain.ResourceTodos} {
		if res, ok := out.Results[name]; ok {
			table.Append([]string{string(name), fmt.Sprintf("%.1f", res.ElapsedMS)})
		}
	}
	table.SetFooter([]string{string(out.Mode) + " total", fmt.Sprintf("%.1f", out.ElapsedMS)})
	table.Render()
}

// compareModes runs the same dashboard both ways and tabulates the timings.
func compareModes(ctx context.Context, agg *dashboard.Aggregator, reqs []domain.ResourceRequest) {
	seq, err := agg.RunSequential(ctx, reqs)
	if err != nil {
		reportFailure(err)
	}
	par, err := agg.RunParallel(ctx, reqs)
	if err != nil {
		reportFailure(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Mode", "User (ms)", "Posts (ms)", "Todos (ms)", "Total (ms)"})
	for _, out := range []domain.AggregateResult{seq, par} {
		row := []string{string(out.Mode)}
		for _, name := range []domain.ResourceName{domain.ResourceUser, domain.ResourcePosts, domain.ResourceTodos} {
			row = append(row, fmt.Sprintf("%.1f", out.Results[name].ElapsedMS))
		}
		row = append(row, fmt.Sprintf("%.1f", out.ElapsedMS))
		table.Append(row)
	}
	table.Render()

	if par.ElapsedMS > 0 {
		fmt.Printf("\nparallel was %.1fx the speed of sequential\n", seq.ElapsedMS/par.ElapsedMS)
	}
}
