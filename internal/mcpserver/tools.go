package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/waypoint/internal/output"
	"github.com/panbanda/waypoint/internal/pipeline"
)

// AnalyzeInput is the input of the analyze tool.
type AnalyzeInput struct {
	ProjectPath string `json:"projectPath,omitempty" jsonschema:"Absolute path to the project or any directory inside it. The repository root is detected automatically."`
	Phase       string `json:"phase,omitempty" jsonschema:"Phase to run: conceptual, structural, analysis, synthesis or all (default)."`
	Format      string `json:"format,omitempty" jsonschema:"Result encoding: json (default) or toon."`
}

func getFormat(input AnalyzeInput) output.Format {
	if strings.EqualFold(input.Format, string(output.FormatTOON)) {
		return output.FormatTOON
	}
	return output.FormatJSON
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	resp := s.session.Analyze(ctx, pipeline.Request{
		ProjectPath: input.ProjectPath,
		Phase:       input.Phase,
	})

	if !resp.IsError {
		if data, err := resp.JSON(); err == nil {
			if err := s.schema.validate(data); err != nil {
				s.logger.Warn("envelope does not match schema", "error", err)
			}
		}
	}

	text, err := output.Marshal(resp.Payload(), getFormat(input))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(text)}},
		IsError: resp.IsError,
	}, nil, nil
}

func describeAnalyze() string {
	return `Builds an onboarding report for an unfamiliar codebase in phases, using fast regex heuristics rather than parsing.

PHASES:
- conceptual: key documents (README, ARCHITECTURE, CONTRIBUTING, ...) with one-line summaries
- structural: directory tree, detected repository root and layout observations
- analysis: file statistics, dependencies, entry points, idioms, architecture tags and code elements
- synthesis: recap of earlier phases in this session with recommendations
- all (default): every phase in order plus an executive summary and health indicators

USE WHEN:
- Starting work in a repository you have not seen before
- Looking for the entry points, frameworks and conventions of a project

INTERPRETING RESULTS:
- findings is markdown meant to be read directly
- nextPhaseNeeded and suggestedNextPhase tell you which phase to run next
- analysisHistoryLength counts phases run since the server started
- On failure the result is {"error": ..., "status": "failed"}`
}
