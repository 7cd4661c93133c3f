// Package stubserver is an in-memory implementation of the LuxGrid REST
// surface for local development and integration tests. It speaks the real
// wire envelope so the client code under test cannot tell the difference.
package stubserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/luxgrid/luxgrid-admin/internal/wire"
)

// TokenCheck reports whether a bearer token is acceptable. Nil accepts any
// non-empty token.
type TokenCheck func(token string) bool

// Server holds the in-memory dataset behind the stub routes.
type Server struct {
	mu         sync.Mutex
	projects   []wire.ProjectResponse
	fixtures   map[string][]wire.FixtureResponse
	zones      map[string][]wire.ZoneResponse
	panels     []wire.PanelResponse
	config     wire.ConfigurationResponse
	checkToken TokenCheck
}

// New builds a stub server with the given reference configuration bundle.
func New(config wire.ConfigurationResponse, checkToken TokenCheck) *Server {
	if checkToken == nil {
		checkToken = func(token string) bool { return token != "" }
	}
	return &Server{
		fixtures:   make(map[string][]wire.FixtureResponse),
		zones:      make(map[string][]wire.ZoneResponse),
		config:     config,
		checkToken: checkToken,
	}
}

// Router assembles the gin engine with all stub routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.POST("/auth/login", s.login)

	authed := r.Group("/", s.requireToken)
	{
		authed.GET("/projects", s.listProjects)
		authed.POST("/projects", s.createProject)
		authed.GET("/projects/:id", s.getProject)
		authed.PATCH("/projects/:id", s.updateProject)
		authed.DELETE("/projects/:id", s.deleteProject)
		authed.POST("/projects/:id/clone", s.cloneProject)

		authed.GET("/configurations", s.getConfiguration)
		authed.GET("/configurations/device-types", s.getDeviceTypes)
		authed.GET("/configurations/panel-types", s.getPanelTypes)

		authed.GET("/panels", s.listPanels)
		authed.POST("/panels", s.createPanel)
		authed.PUT("/panels/:id", s.updatePanel)
		authed.DELETE("/panels/:id", s.deletePanel)
		authed.POST("/panels/:id/clone", s.clonePanel)
	}

	return r
}

func (s *Server) requireToken(c *gin.Context) {
	token := extractBearer(c.GetHeader("Authorization"))
	if !s.checkToken(token) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}
	c.Next()
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	respond(c, gin.H{"token": "stub-token-" + req.Username}, "Signed in")
}

// respond wraps a payload in the wire envelope.
func respond(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{
		"Data":    data,
		"Message": message,
		"success": true,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"Data": nil, "Message": message, "error": message})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
