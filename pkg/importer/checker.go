package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Checker performs periodic HEAD requests against every skill source URL and
// records status and validators in the SourceDB.
type Checker struct {
	sources  *SourceDB
	logger   *slog.Logger
	interval time.Duration
	client   *http.Client
}

// NewChecker creates a Checker that will verify source URLs every interval.
func NewChecker(sources *SourceDB, logger *slog.Logger, interval time.Duration) *Checker {
	return &Checker{
		sources:  sources,
		logger:   logger,
		interval: interval,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Start runs an immediate check then repeats every interval until ctx is cancelled.
func (c *Checker) Start(ctx context.Context) {
	c.CheckAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckAll(ctx)
		}
	}
}

// CheckSummary counts the outcome of one CheckAll pass.
type CheckSummary struct {
	OK     int
	Failed int
	// Changed lists the adapters whose source now serves a different
	// revision than the one last imported.
	Changed []string
}

// Total returns the number of sources checked.
func (s CheckSummary) Total() int { return s.OK + s.Failed }

// CheckAll checks every source URL, records the result and flags sources
// that changed since their last import.
func (c *Checker) CheckAll(ctx context.Context) CheckSummary {
	var sum CheckSummary
	sources, err := c.sources.ListSources()
	if err != nil {
		c.logger.Error("source check: list sources failed", "error", err)
		return sum
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			return sum
		}

		chk := c.checkOne(ctx, src.SourceURL)
		if err := c.sources.RecordCheck(src.AdapterID, chk); err != nil {
			c.logger.Error("source check: record failed", "adapter", src.AdapterID, "error", err)
		}

		if chk.Status < 200 || chk.Status >= 400 {
			sum.Failed++
			c.logger.Warn("skill source unreachable",
				"adapter", src.AdapterID,
				"category", src.CategoryID,
				"url", src.SourceURL,
				"status", chk.Status,
				"error", chk.Err,
			)
			continue
		}
		sum.OK++

		src.Checked = &chk
		if src.Changed() {
			sum.Changed = append(sum.Changed, src.AdapterID)
			c.logger.Warn("skill source changed since last import",
				"adapter", src.AdapterID,
				"category", src.CategoryID,
				"imported_at", src.Imported.At,
				"imported_etag", src.Imported.ETag,
				"etag", chk.ETag,
				"last_modified", chk.LastModified,
			)
		}
	}

	if sum.Total() > 0 {
		c.logger.Info("source check complete", "total", sum.Total(), "ok", sum.OK, "failed", sum.Failed, "changed", len(sum.Changed))
	}
	return sum
}

// checkOne sends a HEAD request. Servers that reject HEAD with 405 are
// retried with a GET whose body is discarded. On network error, Status is 0.
func (c *Checker) checkOne(ctx context.Context, url string) Check {
	chk := c.request(ctx, http.MethodHead, url)
	if chk.Err == "" && chk.Status == http.StatusMethodNotAllowed {
		return c.request(ctx, http.MethodGet, url)
	}
	return chk
}

func (c *Checker) request(ctx context.Context, method, url string) Check {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return Check{Revision: Revision{At: time.Now()}, Err: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("User-Agent", "skillmatch-source-check")

	resp, err := c.client.Do(req)
	if err != nil {
		return Check{Revision: Revision{At: time.Now()}, Err: fmt.Sprintf("%s %s: %v", method, url, err)}
	}
	resp.Body.Close()
	return Check{Revision: revisionOf(resp), Status: resp.StatusCode}
}
