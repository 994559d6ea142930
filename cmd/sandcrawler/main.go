package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nicwatson/javasandcrawer/engine"
	"github.com/nicwatson/javasandcrawer/service"
	"github.com/nicwatson/javasandcrawer/snippet"
	"github.com/nicwatson/javasandcrawer/webindex"
	"github.com/nicwatson/javasandcrawer/webindex/store/postgres"
)

const (
	appName = "sandcrawler"
	appSHA  = "compiled-and-deployed-at"
)

func main() {
	host, _ := os.Hostname()

	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"SHA":  appSHA,
		"host": host,
	})

	eng, resultsPerPage, boost, recrawlInterval, err := configureEngine(logger)
	if err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("shutting down due to os signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := eng.Initialize(ctx); err != nil {
		logger.WithField("err", err).Error("failed to clear prior crawl data")

		return
	}

	if err := eng.Crawl(ctx); err != nil {
		logger.WithField("err", err).Error("crawl failed")

		return
	}

	group := service.Group{
		&queryLoopService{eng: eng, resultsPerPage: resultsPerPage, boost: boost},
	}

	if recrawlInterval > 0 {
		group = append(group, &recrawlService{
			eng:      eng,
			interval: recrawlInterval,
			logger:   logger.WithField("component", "recrawl"),
		})
	}

	if err := group.Execute(ctx); err != nil {
		logger.WithField("err", err).Error("service group exited with an error")
	}

	logger.Info("shutdown complete")
}

func configureEngine(logger *logrus.Entry) (*engine.Engine, int, bool, time.Duration, error) {
	var seeds string

	flag.StringVar(&seeds, "seeds", "", "Comma separated list of seed URLs to crawl")

	numWorkers := flag.Int(
		"num-fetch-workers", runtime.NumCPU(),
		"Number of concurrent page-fetch workers",
	)
	maxPages := flag.Int("max-pages", 10000, "Maximum number of pages to crawl")
	maxRetries := flag.Int("max-retries", 3, "Maximum fetch retries per page before admitting it blank")
	resultsPerPage := flag.Int("results-per-page", 10, "Number of search results displayed per page")
	boost := flag.Bool("boost-by-pagerank", false, "Scale each result's cosine score by its PageRank before sorting")
	recrawlInterval := flag.Duration(
		"recrawl-interval", 0,
		"If set, re-crawl and rebuild the index on this interval while the query loop keeps serving the previous index",
	)

	storeURI := flag.String(
		"index-store-uri", "file://./data/crawl.dat",
		"URI for persisting the built index."+
			" [supported URIs: file://path, postgresql://user@host:5432/webindex?sslmode=disable]",
	)

	flag.Parse()

	if strings.TrimSpace(seeds) == "" {
		return nil, 0, false, 0, fmt.Errorf("at least one seed URL must be provided with --seeds")
	}

	store, err := getIndexStore(*storeURI, logger)
	if err != nil {
		return nil, 0, false, 0, err
	}

	eng, err := engine.New(engine.Config{
		Seeds:             strings.Split(seeds, ","),
		MaxPages:          *maxPages,
		MaxRetries:        *maxRetries,
		NumOfFetchWorkers: *numWorkers,
		Store:             store,
		Logger:            logger.WithField("component", "engine"),
		Progress: func(stage engine.Stage) {
			logger.WithField("stage", stage.String()).Info("crawl progress")
		},
	})
	if err != nil {
		return nil, 0, false, 0, err
	}

	return eng, *resultsPerPage, *boost, *recrawlInterval, nil
}

func getIndexStore(storeURI string, logger *logrus.Entry) (webindex.Store, error) {
	u, err := url.Parse(storeURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index store URI: %w", err)
	}

	switch u.Scheme {
	case "file":
		logger.Info("using file-based index store")

		return webindex.NewFileStore(u.Host + u.Path), nil
	case "postgresql":
		logger.Info("using postgres index store")

		return postgres.New(storeURI)
	default:
		return nil, fmt.Errorf("unsupported index store URI scheme: %q", u.Scheme)
	}
}

// queryLoopService reads search queries from stdin until it hits EOF
// or its context is cancelled, printing a summarized, highlighted
// result page for each. It runs alongside recrawlService under a
// service.Group so a Ctrl-D on the query loop or a recrawl failure
// brings the whole process down together.
type queryLoopService struct {
	eng            *engine.Engine
	resultsPerPage int
	boost          bool
}

func (q *queryLoopService) Name() string { return "query-loop" }

func (q *queryLoopService) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("enter a search query, or press Ctrl-D to exit")

	for {
		fmt.Print("> ")

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !scanner.Scan() {
			return nil
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		results, err := q.eng.SearchPlus(query, q.boost, q.resultsPerPage)
		if err != nil {
			fmt.Println("error:", err)

			continue
		}

		highlighter := snippet.NewHighlighter(query)
		summarizer := snippet.NewSummarizer(query, 200, q.eng.Idf)

		for _, r := range results {
			fmt.Printf("%.3f  %s  %s\n", r.Score, r.URL.String(), highlighter.Highlight(r.Title))

			if summary := summarizer.Summary(q.eng.Text(r.URL)); summary != "" {
				fmt.Printf("        %s\n", highlighter.Highlight(summary))
			}
		}
	}
}

// recrawlService periodically re-runs the engine's crawl-and-index
// cycle so long-lived server invocations pick up fresh content
// without a restart. A failed crawl is treated as fatal to the whole
// service group, matching the fail-fast contract of service.Group.
type recrawlService struct {
	eng      *engine.Engine
	interval time.Duration
	logger   *logrus.Entry
}

func (r *recrawlService) Name() string { return "recrawl" }

func (r *recrawlService) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.logger.Info("starting scheduled recrawl")

			if err := r.eng.Crawl(ctx); err != nil {
				return fmt.Errorf("scheduled recrawl: %w", err)
			}
		}
	}
}
