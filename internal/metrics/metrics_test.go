package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/chainvault/internal/ledger"
)

func TestObserveLedgerCall(t *testing.T) {
	m := New()

	m.ObserveLedgerCall("getMyFiles", ledger.KindNone, time.Millisecond)
	m.ObserveLedgerCall("getMyFiles", ledger.KindNone, time.Millisecond)
	m.ObserveLedgerCall("getUserFiles", ledger.Classify(ledger.ErrAccessDenied), time.Millisecond)
	m.ObserveLedgerCall("allow", ledger.Classify(errors.New("rpc down")), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ledgerCalls.WithLabelValues("getMyFiles", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerCalls.WithLabelValues("getUserFiles", "access_denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerCalls.WithLabelValues("allow", "remote_failure")))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, http.StatusOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chainvault_http_requests_total")
}
