// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Computes charts and manages saved birth profiles for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/astro/internal/chart"
	"github.com/harper/astro/internal/models"
	"github.com/harper/astro/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerComputeChartTool()
	s.registerSaveProfileTool()
	s.registerGetChartTool()
	s.registerListProfilesTool()
	s.registerRemoveProfileTool()
}

// ChartOutput defines output for chart tools. Planet houses are 0-based;
// houses and ascendant are omitted when the chart has no location.
type ChartOutput struct {
	Summary       string                         `json:"summary"`
	Planets       map[string]models.PositionView `json:"planets"`
	Houses        []float64                      `json:"houses,omitempty"`
	Ascendant     *float64                       `json:"ascendant,omitempty"`
	AscendantSign string                         `json:"ascendant_sign,omitempty"`
	Tags          []string                       `json:"tags"`
}

func newChartOutput(c *chart.Chart) ChartOutput {
	doc := c.Document()
	return ChartOutput{
		Summary:       c.String(),
		Planets:       doc.Planets.ByCode(),
		Houses:        doc.Houses,
		Ascendant:     doc.Ascendant,
		AscendantSign: string(c.AscendantSign),
		Tags:          c.Tags(),
	}
}

// ProfileOutput defines output for profile tools.
type ProfileOutput struct {
	Name      string    `json:"name"`
	BornAt    time.Time `json:"born_at"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

func newProfileOutput(p *models.Profile) ProfileOutput {
	return ProfileOutput{
		Name:      p.Name,
		BornAt:    p.BornAt,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

func textResult(v interface{}) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

var locationSchema = map[string]interface{}{
	"latitude": map[string]interface{}{
		"type":        "number",
		"description": "Birth latitude (-90 to 90). Houses are computed only when latitude and longitude are both given.",
	},
	"longitude": map[string]interface{}{
		"type":        "number",
		"description": "Birth longitude (-180 to 180)",
	},
}

func withLocation(props map[string]interface{}) map[string]interface{} {
	for k, v := range locationSchema {
		props[k] = v
	}
	return props
}

// ComputeChartInput defines input for compute_chart tool.
type ComputeChartInput struct {
	Datetime  string   `json:"datetime"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Name      string   `json:"name,omitempty"`
}

func (s *Server) registerComputeChartTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "compute_chart",
		Description: "Compute an astrological chart: zodiac positions of the Sun, Moon, planets and other bodies, plus house cusps and ascendant when a location is given.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": withLocation(map[string]interface{}{
				"datetime": map[string]interface{}{
					"type":        "string",
					"description": "Birth time in UTC as RFC3339 or 'YYYY-MM-DD HH:MM'",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Optional label shown in the chart summary",
				},
			}),
			"required": []string{"datetime"},
		},
	}, s.handleComputeChart)
}

func (s *Server) handleComputeChart(ctx context.Context, req *mcp.CallToolRequest, input ComputeChartInput) (*mcp.CallToolResult, ChartOutput, error) {
	bornAt, err := models.ParseBirthTime(input.Datetime)
	if err != nil {
		return nil, ChartOutput{}, err
	}
	if err := models.ValidateLocation(input.Latitude, input.Longitude); err != nil {
		return nil, ChartOutput{}, err
	}

	c, err := chart.Build(ctx, s.engine, chart.Input{
		Name:      input.Name,
		Time:      bornAt,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	})
	if err != nil {
		s.logger.Error("compute chart failed", "err", err)
		return nil, ChartOutput{}, fmt.Errorf("failed to compute chart: %w", err)
	}

	output := newChartOutput(c)
	return textResult(output), output, nil
}

// SaveProfileInput defines input for save_profile tool.
type SaveProfileInput struct {
	Name      string   `json:"name"`
	Datetime  string   `json:"datetime"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (s *Server) registerSaveProfileTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "save_profile",
		Description: "Save a named birth profile so its chart can be recalled later with get_chart.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": withLocation(map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Unique profile name (e.g., 'darpan')",
				},
				"datetime": map[string]interface{}{
					"type":        "string",
					"description": "Birth time in UTC as RFC3339 or 'YYYY-MM-DD HH:MM'",
				},
			}),
			"required": []string{"name", "datetime"},
		},
	}, s.handleSaveProfile)
}

func (s *Server) handleSaveProfile(_ context.Context, req *mcp.CallToolRequest, input SaveProfileInput) (*mcp.CallToolResult, ProfileOutput, error) {
	name := strings.TrimSpace(input.Name)
	if err := models.ValidateName(name); err != nil {
		return nil, ProfileOutput{}, err
	}
	bornAt, err := models.ParseBirthTime(input.Datetime)
	if err != nil {
		return nil, ProfileOutput{}, err
	}
	if err := models.ValidateLocation(input.Latitude, input.Longitude); err != nil {
		return nil, ProfileOutput{}, err
	}

	p := models.NewProfile(name, bornAt, input.Latitude, input.Longitude)
	if err := s.repo.CreateProfile(p); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ProfileOutput{}, fmt.Errorf("profile '%s' already exists", name)
		}
		return nil, ProfileOutput{}, fmt.Errorf("failed to save profile: %w", err)
	}

	output := newProfileOutput(p)
	return textResult(output), output, nil
}

// ProfileNameInput defines input for tools addressing one profile.
type ProfileNameInput struct {
	Name string `json:"name"`
}

func nameSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"name"},
	}
}

func (s *Server) registerGetChartTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_chart",
		Description: "Compute the chart of a saved profile.",
		InputSchema: nameSchema("Name of the saved profile"),
	}, s.handleGetChart)
}

func (s *Server) handleGetChart(ctx context.Context, req *mcp.CallToolRequest, input ProfileNameInput) (*mcp.CallToolResult, ChartOutput, error) {
	p, err := s.repo.GetProfileByName(input.Name)
	if err != nil {
		return nil, ChartOutput{}, fmt.Errorf("profile '%s' not found", input.Name)
	}

	c, err := chart.Build(ctx, s.engine, chart.FromProfile(p))
	if err != nil {
		s.logger.Error("compute chart failed", "profile", p.Name, "err", err)
		return nil, ChartOutput{}, fmt.Errorf("failed to compute chart: %w", err)
	}

	output := newChartOutput(c)
	return textResult(output), output, nil
}

// ListProfilesOutput defines output for list_profiles tool.
type ListProfilesOutput struct {
	Profiles []ProfileOutput `json:"profiles"`
	Count    int             `json:"count"`
}

// ListProfilesInput is empty but required for type.
type ListProfilesInput struct{}

func (s *Server) registerListProfilesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_profiles",
		Description: "List all saved birth profiles.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListProfiles)
}

func (s *Server) handleListProfiles(_ context.Context, req *mcp.CallToolRequest, input ListProfilesInput) (*mcp.CallToolResult, ListProfilesOutput, error) {
	output, err := s.listProfiles()
	if err != nil {
		return nil, ListProfilesOutput{}, err
	}
	return textResult(output), output, nil
}

func (s *Server) listProfiles() (ListProfilesOutput, error) {
	profiles, err := s.repo.ListProfiles()
	if err != nil {
		return ListProfilesOutput{}, fmt.Errorf("failed to list profiles: %w", err)
	}

	outputs := make([]ProfileOutput, len(profiles))
	for i, p := range profiles {
		outputs[i] = newProfileOutput(p)
	}
	return ListProfilesOutput{Profiles: outputs, Count: len(outputs)}, nil
}

// RemoveProfileOutput defines output for remove_profile tool.
type RemoveProfileOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerRemoveProfileTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_profile",
		Description: "Remove a saved profile. This cannot be undone.",
		InputSchema: nameSchema("Name of the profile to remove"),
	}, s.handleRemoveProfile)
}

func (s *Server) handleRemoveProfile(_ context.Context, req *mcp.CallToolRequest, input ProfileNameInput) (*mcp.CallToolResult, RemoveProfileOutput, error) {
	p, err := s.repo.GetProfileByName(input.Name)
	if err != nil {
		return nil, RemoveProfileOutput{}, fmt.Errorf("profile '%s' not found", input.Name)
	}

	if err := s.repo.DeleteProfile(p.ID); err != nil {
		return nil, RemoveProfileOutput{}, fmt.Errorf("failed to remove profile: %w", err)
	}

	output := RemoveProfileOutput{
		Success: true,
		Message: fmt.Sprintf("Removed '%s'", input.Name),
	}
	return textResult(output), output, nil
}
