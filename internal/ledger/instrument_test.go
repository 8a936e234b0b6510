package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/ledger/ledgertest"
)

type call struct {
	op   string
	kind ledger.Kind
}

type recorder struct{ calls []call }

func (r *recorder) ObserveLedgerCall(op string, kind ledger.Kind, _ time.Duration) {
	r.calls = append(r.calls, call{op: op, kind: kind})
}

func TestInstrumentReportsOutcome(t *testing.T) {
	owner := common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	viewer := common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	ctx := context.Background()

	fake := ledgertest.New()
	fake.Errs["allow"] = errors.New("replacement transaction underpriced")
	rec := &recorder{}
	l := ledger.Instrument(fake, rec)

	_, err := l.GetMyFiles(ctx, owner)
	require.NoError(t, err)
	_, err = l.GetUserFiles(ctx, owner, viewer)
	require.ErrorIs(t, err, ledger.ErrAccessDenied)
	_, err = l.GetMyFiles(ctx, common.Address{})
	require.ErrorIs(t, err, ledger.ErrUnauthorized)
	require.Error(t, l.Allow(ctx, owner, viewer))
	require.NoError(t, l.AllowFile(ctx, owner, 0, viewer))

	assert.Equal(t, []call{
		{op: "getMyFiles", kind: ledger.KindNone},
		{op: "getUserFiles", kind: ledger.KindAccessDenied},
		{op: "getMyFiles", kind: ledger.KindUnauthorized},
		{op: "allow", kind: ledger.KindRemoteFailure},
		{op: "allowFile", kind: ledger.KindNone},
	}, rec.calls)
}
