// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only view of saved profiles for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProfilesURI is the resource listing every saved profile.
const ProfilesURI = "astro://profiles"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        ProfilesURI,
		Description: "All saved birth profiles",
		URI:         ProfilesURI,
		MIMEType:    "application/json",
	}, s.handleProfilesResource)
}

func (s *Server) handleProfilesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	output, err := s.listProfiles()
	if err != nil {
		return nil, err
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profiles: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      ProfilesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
