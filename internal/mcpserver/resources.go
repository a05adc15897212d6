package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         envelopeSchemaURL,
		Name:        "envelope-schema",
		Description: "JSON Schema of a successful analyze result.",
		MIMEType:    "application/schema+json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      envelopeSchemaURL,
				MIMEType: "application/schema+json",
				Text:     string(envelopeSchemaJSON),
			}},
		}, nil
	})
}
