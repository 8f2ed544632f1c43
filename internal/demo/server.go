package demo

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/model1"
)

// DefaultPort is the demo API listening port.
const DefaultPort = 8080

// Server serves in-memory portal fixtures over the portal REST layout.
type Server struct {
	data   map[string][]model1.Row
	tables map[string]string
	log    *zap.Logger
	router *gin.Engine
	mx     sync.RWMutex
}

// NewServer returns a demo server seeded with fixtures.
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := Server{
		data:   seed(),
		tables: make(map[string]string, len(dao.AllRIDs)),
		log:    log,
	}
	for _, rid := range dao.AllRIDs {
		s.tables[rid.Path()] = rid.Table()
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)
	api := r.Group("/api")
	api.GET("", s.ping)
	api.GET("/:group/:resource", s.list)
	api.GET("/:group/:resource/:id", s.get)
	api.PATCH("/:group/:resource/:id", s.patch)
	api.DELETE("/:group/:resource/:id", s.delete)
	s.router = r

	return &s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		s.log.Info("Demo API listening", zap.String("addr", addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Debug("Demo request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.String("requestID", c.GetHeader("X-Request-ID")),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) table(c *gin.Context) (string, bool) {
	t, ok := s.tables[c.Param("group")+"/"+c.Param("resource")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource"})
	}
	return t, ok
}

func (s *Server) list(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	s.mx.RLock()
	matches := make([]model1.Row, 0, len(s.data[table]))
	for _, r := range s.data[table] {
		if search == "" || rowMatches(r, search) {
			matches = append(matches, r.Clone())
		}
	}
	s.mx.RUnlock()

	total := len(matches)
	if p := c.Query("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(model1.DefaultLimit)))
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		start := min((page-1)*limit, total)
		end := min(start+limit, total)
		matches = matches[start:end]
	}

	c.JSON(http.StatusOK, gin.H{"data": matches, "total": total})
}

func (s *Server) get(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}

	s.mx.RLock()
	defer s.mx.RUnlock()
	idx := s.indexOf(table, c.Param("id"))
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s.data[table][idx]})
}

func (s *Server) patch(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	ops, err := dao.ParsePatch(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, o := range ops {
		if f, _ := o.Field(); f == model1.DefaultIDField {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "id is immutable"})
			return
		}
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	idx := s.indexOf(table, c.Param("id"))
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	row, err := dao.ApplyPatch(s.data[table][idx], ops)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.data[table][idx] = row

	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (s *Server) delete(c *gin.Context) {
	table, ok := s.table(c)
	if !ok {
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()
	idx := s.indexOf(table, c.Param("id"))
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	rows := s.data[table]
	s.data[table] = append(rows[:idx:idx], rows[idx+1:]...)

	c.Status(http.StatusNoContent)
}

func (s *Server) indexOf(table, id string) int {
	for i, r := range s.data[table] {
		if model1.CellText(r[model1.DefaultIDField]) == id {
			return i
		}
	}
	return -1
}

func rowMatches(r model1.Row, search string) bool {
	for _, v := range r {
		if strings.Contains(strings.ToLower(model1.CellText(v)), search) {
			return true
		}
	}
	return false
}
