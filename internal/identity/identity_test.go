package identity

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/chainvault/internal/ledger"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "checksummed", input: "0x52908400098527886E0F7030069857D2E4169EE7"},
		{name: "lowercase", input: "0x52908400098527886e0f7030069857d2e4169ee7"},
		{name: "surrounding space", input: "  0x52908400098527886e0f7030069857d2e4169ee7 "},
		{name: "empty", input: "", wantErr: ledger.ErrInvalidInput},
		{name: "too short", input: "0x1234", wantErr: ledger.ErrInvalidAddress},
		{name: "not hex", input: "0xZZ908400098527886E0F7030069857D2E4169EE7", wantErr: ledger.ErrInvalidAddress},
		{name: "name", input: "alice.eth", wantErr: ledger.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(Addresses, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, ledger.KindInvalidInput, ledger.Classify(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7"), addr)
		})
	}
}

func TestAccountContext(t *testing.T) {
	_, ok := AccountFrom(context.Background())
	assert.False(t, ok)

	_, ok = AccountFrom(WithAccount(context.Background(), common.Address{}))
	assert.False(t, ok)

	addr := common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")
	got, ok := AccountFrom(WithAccount(context.Background(), addr))
	assert.True(t, ok)
	assert.Equal(t, addr, got)
}
