package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/drillpad/internal/actions"
	"github.com/abhisek/drillpad/internal/bank"
	"github.com/abhisek/drillpad/internal/session"
)

// SessionCookie is the cookie carrying the session id.
const SessionCookie = "drillpad_session"

// sweepInterval is how often idle sessions are dropped while serving.
const sweepInterval = 5 * time.Minute

// Options configures a Server.
type Options struct {
	Bank       *bank.Cache
	Sessions   *session.Store
	Dispatcher *actions.Dispatcher

	// SecureCookie marks the session cookie Secure (serve behind TLS).
	SecureCookie bool
}

// Server is the browser surface: one page per mode, form posts for every
// action, notices carried across the redirect as flashes.
type Server struct {
	bank       *bank.Cache
	sessions   *session.Store
	dispatcher *actions.Dispatcher
	secure     bool
	pages      *pageSet
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Bank == nil || opts.Sessions == nil || opts.Dispatcher == nil {
		return nil, errors.New("web: bank, sessions and dispatcher are required")
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Server{
		bank:       opts.Bank,
		sessions:   opts.Sessions,
		dispatcher: opts.Dispatcher,
		secure:     opts.SecureCookie,
		pages:      pages,
	}, nil
}

// Routes returns the HTTP handler for the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	r.Get("/healthz", s.health)

	r.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/drill", http.StatusSeeOther)
		})

		r.Route("/drill", func(r chi.Router) {
			r.Get("/", s.drillPage)
			r.Post("/{page}/grade-all", s.drillGradeAll)
			r.Post("/{page}/{pos}", s.drillQuestion)
		})

		r.Route("/notebook", func(r chi.Router) {
			r.Get("/", s.notebookPage)
			r.Get("/export", s.notebookExport)
			r.Post("/import", s.notebookImport)
			r.Post("/clear", s.notebookClear)
			r.Post("/grade-all", s.notebookGradeAll)
			r.Post("/{pos}", s.notebookQuestion)
		})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case err, ok := <-errc:
			if ok {
				return fmt.Errorf("web: serve: %w", err)
			}
			return nil
		case <-ticker.C:
			s.sessions.Sweep()
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Fprintln(os.Stderr, "warning: server shutdown:", err)
				return err
			}
			<-errc
			return nil
		}
	}
}

type ctxKey struct{}

// withSession attaches the caller's session, creating one (and its
// cookie) on first visit or after the old one was swept.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil {
			id = c.Value
		}

		st, created := s.sessions.GetOrCreate(id)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    st.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, st)))
	})
}

func stateFrom(r *http.Request) *session.State {
	return r.Context().Value(ctxKey{}).(*session.State)
}
