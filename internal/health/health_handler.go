package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	serverRunning = "Server is running"
	pingTimeout   = 2 * time.Second
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Response struct {
	Message  string `json:"message"`
	Database string `json:"database,omitempty"`
}

type Handler struct {
	db     Pinger
	logger *zap.Logger
}

func NewHandler(db Pinger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("health.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("health.handler")
	}
	return &Handler{db: db, logger: l}
}

// Health always answers 200; the database field reports connectivity.
func (h *Handler) Health(c *gin.Context) {
	database := "ok"
	if h.db == nil {
		database = "unavailable"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("database ping failed", zap.Error(err))
			database = "unavailable"
		}
	}

	c.JSON(http.StatusOK, Response{Message: serverRunning, Database: database})
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Message: serverRunning})
}

func RegisterRoutes(router *gin.Engine, api *gin.RouterGroup, handler *Handler) {
	router.GET("/", handler.Root)
	api.GET("/health", handler.Health)
}
