package mcp

import (
	"log/slog"

	"github.com/RaulAdSe/garmin-trainer-sub002/internal/coach"
	"github.com/RaulAdSe/garmin-trainer-sub002/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, c *coach.Coach, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GarminTrainer", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Training load and readiness server for a single athlete. Query fitness state, daily readiness, workout recommendations, zone targets, and plan adaptations."),
	)

	h := &handlers{db: db, coach: c, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetReadiness, Handler: h.getReadiness},
		server.ServerTool{Tool: toolGetFitnessTrend, Handler: h.getFitnessTrend},
		server.ServerTool{Tool: toolGetRecommendation, Handler: h.getRecommendation},
		server.ServerTool{Tool: toolGetZones, Handler: h.getZones},
		server.ServerTool{Tool: toolGetPrediction, Handler: h.getPrediction},
		server.ServerTool{Tool: toolGetCompliance, Handler: h.getCompliance},
		server.ServerTool{Tool: toolGetDailyLoads, Handler: h.getDailyLoads},
		server.ServerTool{Tool: toolGetAdaptations, Handler: h.getAdaptations},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resDailyBriefing, Handler: h.dailyBriefing},
		server.ServerResource{Resource: resZoneTargets, Handler: h.zoneTargets},
		server.ServerResource{Resource: resPendingAdaptations, Handler: h.pendingAdaptations},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db    *storage.DB
	coach CoachSource
	log   *slog.Logger
}

// --- Resource definitions ---

var resDailyBriefing = mcp.NewResource(
	"trainer://daily_briefing",
	"Daily Briefing",
	mcp.WithResourceDescription("Today's readiness score, current fitness snapshot, and workout recommendation in one document"),
	mcp.WithMIMEType("application/json"),
)

var resZoneTargets = mcp.NewResource(
	"trainer://zone_targets",
	"Zone Targets",
	mcp.WithResourceDescription("Current heart rate and power training zone boundaries derived from the athlete profile"),
	mcp.WithMIMEType("application/json"),
)

var resPendingAdaptations = mcp.NewResource(
	"trainer://pending_adaptations",
	"Pending Adaptations",
	mcp.WithResourceDescription("Plan adaptation recommendations that have not been applied yet"),
	mcp.WithMIMEType("application/json"),
)
