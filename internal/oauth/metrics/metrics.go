// Package metrics records token and client activity as prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultExpired   = "expired"
	ResultForbidden = "forbidden"
	ResultError     = "error"
)

// Operation label values for client writes.
const (
	OpCreate       = "create"
	OpUpdateScopes = "update_scopes"
	OpDelete       = "delete"
)

// Recorder is safe for concurrent use. A nil *Recorder discards everything.
type Recorder struct {
	tokensIssued  *prometheus.CounterVec
	verifications *prometheus.CounterVec
	clientWrites  *prometheus.CounterVec
}

// New registers the oauth counters with reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		tokensIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth_tokens_issued_total",
			Help: "Access token requests by outcome.",
		}, []string{"result"}),
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth_token_verifications_total",
			Help: "Bearer token verifications by outcome.",
		}, []string{"result"}),
		clientWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth_client_writes_total",
			Help: "Client create, scope update and delete operations by outcome.",
		}, []string{"operation", "result"}),
	}
}

func (r *Recorder) TokenIssued(result string) {
	if r == nil {
		return
	}
	r.tokensIssued.WithLabelValues(result).Inc()
}

func (r *Recorder) TokenVerified(result string) {
	if r == nil {
		return
	}
	r.verifications.WithLabelValues(result).Inc()
}

func (r *Recorder) ClientWrite(operation, result string) {
	if r == nil {
		return
	}
	r.clientWrites.WithLabelValues(operation, result).Inc()
}
