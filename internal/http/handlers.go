package httpx

import (
	"context"
	"net/http"

	"posts-api/internal/model"

	charmlog "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// PostLister reads the full posts table.
type PostLister interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
}

const postsPath = "/posts"

type Server struct {
	R     *gin.Engine
	Posts PostLister
	Log   *charmlog.Logger
}

func NewServer(posts PostLister, log *charmlog.Logger) *Server {
	r := gin.New()
	// Routing is by exact escaped path: /posts/, /POSTS and /%70osts must
	// fall through to 404.
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.HandleMethodNotAllowed = false
	r.UseRawPath = true
	r.UnescapePathValues = false

	r.Use(RequestLogger(log), Recovery(log))

	s := &Server{R: r, Posts: posts, Log: log}

	r.Any(postsPath, s.listPosts)
	r.NoRoute(s.notFound)

	return s
}

func (s *Server) listPosts(c *gin.Context) {
	posts, err := s.Posts.ListPosts(c.Request.Context())
	if err != nil {
		s.Log.Error("list posts failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// notFound also catches /posts requested with a method gin's Any does not
// register (PURGE, PROPFIND, ...); the method is never part of routing.
func (s *Server) notFound(c *gin.Context) {
	if c.Request.URL.EscapedPath() == postsPath {
		s.listPosts(c)
		return
	}
	c.String(http.StatusNotFound, "Not found")
}
