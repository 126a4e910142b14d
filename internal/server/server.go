package server

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitedex/sitedex/internal/model"
	"github.com/sitedex/sitedex/internal/search"
)

//go:embed static
var staticFS embed.FS

// SnippetLength is the number of runes of context shown around the first
// match in a search result.
const SnippetLength = 120

// Server serves the search UI and JSON API for a loaded index.
type Server struct {
	engine  *search.Engine
	records []model.ScrapedRecord
	logger  *slog.Logger
}

// New creates a Server over the given records. The search engine is built
// once at startup; the index is read-only while serving.
func New(records []model.ScrapedRecord, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:  search.NewEngine(records),
		records: records,
		logger:  logger,
	}
}

// searchResult is the JSON shape of a single search hit.
// Terms carries the folded query terms that matched, so the UI highlights
// what the engine actually matched rather than re-parsing the raw query
// (a full-width or upper-case query matches via folding).
type searchResult struct {
	URL     string   `json:"url"`
	Snippet string   `json:"snippet"`
	Terms   []string `json:"terms"`
	Score   int      `json:"score"`
}

// searchResponse is the JSON shape of the search endpoint.
type searchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []searchResult `json:"results"`
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	router.GET("/", s.handleUI)
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/search", s.handleSearch)
		api.GET("/index", s.handleIndex)
	}

	return router
}

// ListenAndServe starts the HTTP server on addr and blocks until it stops.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("search UI listening", "addr", addr, "pages", len(s.records))
	return s.Router().Run(addr)
}

// handleUI serves the embedded search page.
func (s *Server) handleUI(c *gin.Context) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search page unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// handleHealth reports server liveness and index size.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pages": len(s.records)})
}

// handleSearch runs a query against the index and returns ranked results
// with snippets.
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	hits := s.engine.Search(query)
	results := make([]searchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, searchResult{
			URL:     hit.URL,
			Snippet: search.Snippet(hit.Content, hit.Terms, SnippetLength),
			Terms:   hit.Terms,
			Score:   hit.Score,
		})
	}

	c.JSON(http.StatusOK, searchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}

// handleIndex returns the raw index records.
func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, s.records)
}

// requestLogger logs each request through the structured logger instead of
// gin's default writer.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
