package http

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/aussiebroadwan/oauthlib/pkg/httpx"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
)

var (
	readyProbe = []byte("readyz")

	errNoCodec       = errors.New("no codec configured")
	errCodecMismatch = errors.New("decrypted probe does not match")
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe reporting database connectivity and whether the token codec can seal and open a payload
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	codec *jwe.Codec,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database: "ok",
			Codec:    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Round trip a probe through the codec
		if err := probeCodec(codec); err != nil {
			checks.Codec = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

func probeCodec(codec *jwe.Codec) error {
	if codec == nil {
		return errNoCodec
	}
	token, err := codec.Encrypt(readyProbe)
	if err != nil {
		return err
	}
	got, err := codec.Decrypt(token)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, readyProbe) {
		return errCodecMismatch
	}
	return nil
}
