package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"walletpoker-server/internal/jwt"
	"walletpoker-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss

	// store for testing purposes
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		tr := r.PathPrefix("/tournament/{id}").Subrouter()
		tr.Methods(http.MethodPost).Path("/action").Handler(this.postTournamentAction())
		tr.Methods(http.MethodGet).Path("/state").Handler(this.getTournamentState())
		tr.Methods(http.MethodGet).Path("/next-hand").Handler(this.getTournamentNextHand())
		tr.Methods(http.MethodPost).Path("/next-hand").Handler(this.postTournamentNextHand())
		tr.Methods(http.MethodDelete).Path("/next-hand").Handler(this.deleteTournamentNextHand())
	}

	// requires an admin token
	// depends on authMiddleware
	{
		r := this.adminRouter
		r.Methods(http.MethodPost).Path("/tournament").Handler(this.postTournament())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		claims, err := jwt.Validate(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, claims)
		w.Header().Set("WalletPoker-PlayerID", claims.Subject)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// adminMiddleware requires authMiddleware to execute first
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(ctxPlayerKey).(*jwt.Claims)
		if claims == nil || !claims.Admin {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func playerIDFromContext(ctx context.Context) string {
	claims, _ := ctx.Value(ctxPlayerKey).(*jwt.Claims)
	if claims == nil {
		return ""
	}

	return claims.Subject
}
