package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/bbdap-client/internal/config"
	"github.com/jrsteele09/bbdap-client/server/salesrepo"
	tokenjwt "github.com/jrsteele09/bbdap-client/token/jwt"
	"github.com/rs/zerolog/log"
)

// Server is the demo dashboard backend. It serves the same wire protocol the client speaks.
type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	repo   salesrepo.Repo

	creator   *tokenjwt.Creator
	inspector *tokenjwt.Inspector

	ownerUsername     string
	ownerPasswordHash string
	nowTime           func() time.Time
}

// ServerOption defines a function type to modify the Server instance.
type ServerOption func(*Server)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServerOption {
	return func(s *Server) {
		s.nowTime = nowFunc
	}
}

func New(cfg config.Config, repo salesrepo.Repo, options ...ServerOption) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("[Server New] sales repo is required")
	}

	signer, err := tokenjwt.NewHMACSigner(cfg.GetJWTSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create signer: %w", err)
	}
	creator, err := tokenjwt.NewCreator(signer, cfg.GetTokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token creator: %w", err)
	}

	passwordHash, err := HashPassword(cfg.GetOwnerPassword())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to hash owner password: %w", err)
	}

	s := &Server{
		env:               cfg.GetEnv(),
		mux:               http.NewServeMux(),
		config:            cfg,
		repo:              repo,
		creator:           creator,
		inspector:         tokenjwt.NewInspector(signer),
		ownerUsername:     cfg.GetOwnerUsername(),
		ownerPasswordHash: passwordHash,
		nowTime:           time.Now,
	}
	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
