package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/skillmatch/pkg/document"
	"github.com/hazyhaar/skillmatch/pkg/kit"
	"github.com/hazyhaar/skillmatch/pkg/skills"
	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

// ErrInvalidRequest marks errors caused by the caller's input.
var ErrInvalidRequest = errors.New("invalid request")

// Shared request/response types used by both HTTP and MCP transports.

type matchReq struct {
	ResumeText string `json:"resume_text"`
	JobText    string `json:"job_text"`
}

type textReq struct {
	Text string `json:"text"`
}

type extractReq struct {
	Name string
	MIME string
	Data []byte
}

type matchUploadReq struct {
	Resume  extractReq
	JobText string
}

type taxonomyResponse struct {
	ID         string                  `json:"id"`
	Version    string                  `json:"version"`
	Categories []taxonomy.CategoryInfo `json:"categories"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Categories int    `json:"categories"`
	Skills     int    `json:"skills"`
}

// Endpoints holds the kit.Endpoints shared by the HTTP router and MCP tools.
type Endpoints struct {
	Match       kit.Endpoint
	MatchUpload kit.Endpoint
	Categorize  kit.Endpoint
	Extract     kit.Endpoint
	Taxonomy    kit.Endpoint
	Reload      kit.Endpoint
}

// NewEndpoints builds every endpoint over the engine and the registry, each
// wrapped with request ids and logging.
func NewEndpoints(eng *skills.Engine, reg *taxonomy.Registry, logger *slog.Logger) *Endpoints {
	if logger == nil {
		logger = slog.Default()
	}
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(ep)
	}
	return &Endpoints{
		Match:       wrap("match", matchEndpoint(eng)),
		MatchUpload: wrap("match_upload", matchUploadEndpoint(eng)),
		Categorize:  wrap("categorize", categorizeEndpoint(eng)),
		Extract:     wrap("extract", extractEndpoint(eng)),
		Taxonomy:    wrap("taxonomy", taxonomyEndpoint(reg)),
		Reload:      wrap("reload", reloadEndpoint(reg)),
	}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
	}
	return nil
}

func matchEndpoint(eng *skills.Engine) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*matchReq)
		// An empty résumé scores as resume=[]; only the job side is required.
		if err := required("job_text", req.JobText); err != nil {
			return nil, err
		}
		return eng.Compare(req.ResumeText, req.JobText)
	}
}

func matchUploadEndpoint(eng *skills.Engine) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*matchUploadReq)
		if err := required("job_text", req.JobText); err != nil {
			return nil, err
		}
		text, err := document.Extract(ctx, req.Resume.Name, req.Resume.MIME, req.Resume.Data)
		if err != nil {
			return nil, err
		}
		return eng.Compare(text, req.JobText)
	}
}

func categorizeEndpoint(eng *skills.Engine) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*textReq)
		return eng.Analyze(req.Text)
	}
}

func extractEndpoint(eng *skills.Engine) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*extractReq)
		text, err := document.Extract(ctx, req.Name, req.MIME, req.Data)
		if err != nil {
			return nil, err
		}
		return eng.Analyze(text)
	}
}

func taxonomyEndpoint(reg *taxonomy.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		tax := reg.Taxonomy()
		if tax == nil {
			return nil, fmt.Errorf("taxonomy not loaded")
		}
		return taxonomyResponse{ID: tax.ID(), Version: tax.Version(), Categories: tax.Info()}, nil
	}
}

func reloadEndpoint(reg *taxonomy.Registry) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		if err := reg.Reload(); err != nil {
			return nil, fmt.Errorf("reload taxonomy: %w", err)
		}
		return healthResponse{Status: "reloaded", Categories: reg.CategoryCount(), Skills: reg.SkillCount()}, nil
	}
}
