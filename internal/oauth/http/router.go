package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/oauthlib/api/oauth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	limits       httpx.RateLimitProfiles
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	gatherer     prometheus.Gatherer

	store         store.Store
	codec         *jwe.Codec
	TokenService  *service.TokenService
	ClientService *service.ClientService
	UserService   *service.UserService
}

// NewRouter builds a router. A nil gatherer leaves /metrics unregistered.
func NewRouter(
	buildVersion string,
	st store.Store,
	codec *jwe.Codec,
	limits httpx.RateLimitProfiles,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		limits:       limits,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		gatherer:     gatherer,
		store:        st,
		codec:        codec,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerToken()
	r.registerClients()
	r.registerScopes()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			OAuth Client Credentials Service API
//	@version		0.1.0
//	@description	Issues encrypted access tokens to OAuth clients and manages clients, scopes and users.
//	@description
//	@description				Access tokens are opaque JWE strings (dir + A256GCM) and are checked against the live client on every request.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/oauthlib
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Encrypted access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured authenticates the caller for the required scopes, then limits by client.
func (r *Router) secured(h http.Handler, required ...scope.Scope) http.Handler {
	return httpx.Chain(h,
		RequireScopes(r.TokenService, required...),
		httpx.RateLimitByClient(r.limits.Moderate),
	)
}

func (r *Router) registerToken() {
	// POST /oauth/token - strict rate limit by IP + client_id to slow secret guessing
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /oauth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIPAndFormField(r.limits.Strict, "client_id"),
		),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	r.Mux.Handle("POST /oauth/client",
		r.secured(http.HandlerFunc(h.HandleCreate), scope.ClientCreate))
	r.Mux.Handle("DELETE /oauth/client/{client_id}",
		r.secured(http.HandlerFunc(h.HandleDelete), scope.ClientDelete))
	r.Mux.Handle("GET /oauth/client/{client_id}/scope",
		r.secured(http.HandlerFunc(h.HandleGetScopes), scope.ClientRead))
	r.Mux.Handle("PUT /oauth/client/{client_id}/scope",
		r.secured(http.HandlerFunc(h.HandleSetScopes), scope.ClientUpdate))
}

func (r *Router) registerScopes() {
	h := &ScopesHandler{ClientService: r.ClientService}
	r.Mux.Handle("GET /oauth/scope", r.secured(h, scope.ScopeRead))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("POST /oauth/user",
		r.secured(http.HandlerFunc(h.HandleCreate), scope.UserCreate))
	r.Mux.Handle("GET /oauth/user",
		r.secured(http.HandlerFunc(h.HandleList), scope.UserRead))
	r.Mux.Handle("GET /oauth/user/{user_id}",
		r.secured(http.HandlerFunc(h.HandleGet), scope.UserRead))
	r.Mux.Handle("DELETE /oauth/user/{user_id}",
		r.secured(http.HandlerFunc(h.HandleDelete), scope.UserDelete))
	r.Mux.Handle("GET /oauth/user/{user_id}/permission",
		r.secured(http.HandlerFunc(h.HandleGetPermissions), scope.UserPermissionRead))
	r.Mux.Handle("PUT /oauth/user/{user_id}/permission",
		r.secured(http.HandlerFunc(h.HandleUpdatePermissions), scope.UserPermissionUpdate))

	// POST /oauth/login - strict rate limit by IP (password guessing)
	r.Mux.Handle("POST /oauth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.codec),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)

	if r.gatherer != nil {
		r.Mux.Handle("GET /metrics",
			httpx.Chain(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}),
				httpx.RateLimitByIP(r.limits.Public),
			),
		)
	}
}
