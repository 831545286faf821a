package api

import (
	"context"
	"log/slog"

	"github.com/hazyhaar/skillmatch/pkg/kit"
	"github.com/hazyhaar/skillmatch/pkg/skills"
	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer returns an MCP server exposing the skillmatch tools.
func NewMCPServer(version string, eng *skills.Engine, reg *taxonomy.Registry, logger *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer("skillmatch", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, NewEndpoints(eng, reg, logger))
	return srv
}

// RegisterMCPTools registers the four skillmatch MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, eps *Endpoints) {
	registerExtractSkills(srv, eps)
	registerCategorizeSkills(srv, eps)
	registerMatchSkills(srv, eps)
	registerListCategories(srv, eps)
}

func decodeText(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	text, _ := req.GetArguments()["text"].(string)
	return &kit.MCPDecodeResult{Request: &textReq{Text: text}}, nil
}

func registerExtractSkills(srv *server.MCPServer, eps *Endpoints) {
	tool := mcp.NewTool("extract_skills",
		mcp.WithDescription("Extract known technical skills from a text. Returns the sorted, deduplicated skill list."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Résumé or job description text")),
	)
	kit.RegisterMCPTool(srv, tool, flatSkills(eps.Categorize), decodeText)
}

func registerCategorizeSkills(srv *server.MCPServer, eps *Endpoints) {
	tool := mcp.NewTool("categorize_skills",
		mcp.WithDescription("Extract skills from a text and group them by taxonomy category (languages, frameworks, databases, cloud, tools)."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Résumé or job description text")),
	)
	kit.RegisterMCPTool(srv, tool, eps.Categorize, decodeText)
}

func registerMatchSkills(srv *server.MCPServer, eps *Endpoints) {
	tool := mcp.NewTool("match_skills",
		mcp.WithDescription("Score how well a résumé covers the skills of a job description. Returns score (0-100), matched, missing and extra skills."),
		mcp.WithString("resume_text", mcp.Required(), mcp.Description("Plain text of the résumé")),
		mcp.WithString("job_text", mcp.Required(), mcp.Description("Plain text of the job description")),
	)
	kit.RegisterMCPTool(srv, tool, eps.Match, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		resume, _ := args["resume_text"].(string)
		job, _ := args["job_text"].(string)
		return &kit.MCPDecodeResult{Request: &matchReq{ResumeText: resume, JobText: job}}, nil
	})
}

func registerListCategories(srv *server.MCPServer, eps *Endpoints) {
	tool := mcp.NewTool("list_categories",
		mcp.WithDescription("List the loaded skill taxonomy: categories in order with their skill counts and sources."),
	)
	kit.RegisterMCPTool(srv, tool, eps.Taxonomy, func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}

type skillsResponse struct {
	Skills skills.SkillSet `json:"skills"`
}

// flatSkills narrows a categorize endpoint to the flat skill list.
func flatSkills(categorize kit.Endpoint) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		resp, err := categorize(ctx, request)
		if err != nil {
			return nil, err
		}
		return skillsResponse{Skills: resp.(*skills.Analysis).Skills}, nil
	}
}
