package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/models"
)

// Backend is what the contract client needs from an RPC connection.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Signer produces transaction options for the one account allowed to write.
type Signer interface {
	Transactor(ctx context.Context) (*bind.TransactOpts, error)
}

type contractFile struct {
	FileName    string
	FileType    string
	IpfsHash    string
	FileSize    *big.Int
	UploadTime  *big.Int
	Owner       common.Address
	IsPublic    bool
	Description string
	Tags        []string
}

type contractAccess struct {
	User   common.Address
	Access bool
}

type contractFileAccess struct {
	FileId    *big.Int
	User      common.Address
	HasAccess bool
}

// Contract talks to the deployed vault contract. Reads are eth_calls made
// "from" the caller; writes are signed by Signer and require caller to be the
// signer's account.
type Contract struct {
	address common.Address
	backend Backend
	bound   *bind.BoundContract
	signer  Signer
}

// NewContract binds the vault ABI at address. signer may be nil for a read-only client.
func NewContract(address common.Address, backend Backend, signer Signer) (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(vaultABI))
	if err != nil {
		return nil, fmt.Errorf("parse vault abi: %w", err)
	}
	return &Contract{
		address: address,
		backend: backend,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
		signer:  signer,
	}, nil
}

// Dial connects to rpcURL and binds the contract at address.
func Dial(ctx context.Context, rpcURL, address string, signer Signer) (*Contract, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("contract address %q: %w", address, ErrInvalidAddress)
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	zap.L().Info("Connected to ledger RPC", zap.String("contract", address))
	return NewContract(common.HexToAddress(address), client, signer)
}

func (c *Contract) call(ctx context.Context, from common.Address, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	err := c.bound.Call(&bind.CallOpts{Context: ctx, From: from}, &out, method, params...)
	if err != nil {
		if isDenial(err) {
			return nil, fmt.Errorf("%s: %w", method, ErrAccessDenied)
		}
		return nil, &RemoteError{Op: method, Err: err}
	}
	if len(out) == 0 {
		return nil, &RemoteError{Op: method, Err: errors.New("empty result")}
	}
	return out, nil
}

func (c *Contract) files(ctx context.Context, from common.Address, method string, withOwner bool, params ...interface{}) ([]models.FileRecord, error) {
	out, err := c.call(ctx, from, method, params...)
	if err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new([]contractFile)).(*[]contractFile)

	records := make([]models.FileRecord, 0, len(raw))
	for i, f := range raw {
		rec := models.FileRecord{
			ID:          i,
			FileName:    f.FileName,
			FileType:    models.ParseFileType(f.FileType),
			FileSize:    f.FileSize.Int64(),
			ContentHash: f.IpfsHash,
			UploadedAt:  time.Unix(f.UploadTime.Int64(), 0).UTC(),
			IsPublic:    f.IsPublic,
			Description: f.Description,
			Tags:        f.Tags,
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		if withOwner {
			rec.Owner = f.Owner.Hex()
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Contract) GetMyFiles(ctx context.Context, caller common.Address) ([]models.FileRecord, error) {
	if NoSession(caller) {
		return nil, ErrUnauthorized
	}
	return c.files(ctx, caller, "getMyFiles", false)
}

func (c *Contract) GetUserFiles(ctx context.Context, owner, caller common.Address) ([]models.FileRecord, error) {
	if NoSession(caller) {
		return nil, ErrUnauthorized
	}
	return c.files(ctx, caller, "getUserFiles", true, owner)
}

func (c *Contract) GetPublicFiles(ctx context.Context) ([]models.FileRecord, error) {
	return c.files(ctx, common.Address{}, "getPublicFiles", true)
}

func (c *Contract) ShareAccess(ctx context.Context, caller common.Address) ([]models.AccessGrant, error) {
	if NoSession(caller) {
		return nil, ErrUnauthorized
	}
	out, err := c.call(ctx, caller, "shareAccess")
	if err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new([]contractAccess)).(*[]contractAccess)

	grants := make([]models.AccessGrant, 0, len(raw))
	for _, a := range raw {
		grants = append(grants, models.AccessGrant{User: a.User.Hex(), Access: a.Access})
	}
	return grants, nil
}

func (c *Contract) GetFileAccessList(ctx context.Context, caller common.Address) ([]models.FileAccessGrant, error) {
	if NoSession(caller) {
		return nil, ErrUnauthorized
	}
	out, err := c.call(ctx, caller, "getFileAccessList")
	if err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new([]contractFileAccess)).(*[]contractFileAccess)

	grants := make([]models.FileAccessGrant, 0, len(raw))
	for _, a := range raw {
		grants = append(grants, models.FileAccessGrant{
			FileID:    int(a.FileId.Int64()),
			User:      a.User.Hex(),
			HasAccess: a.HasAccess,
		})
	}
	return grants, nil
}

func (c *Contract) Allow(ctx context.Context, caller, user common.Address) error {
	if NoSession(user) {
		return ErrInvalidAddress
	}
	return c.transact(ctx, caller, "allow", user)
}

func (c *Contract) Disallow(ctx context.Context, caller, user common.Address) error {
	return c.transact(ctx, caller, "disallow", user)
}

func (c *Contract) AllowFile(ctx context.Context, caller common.Address, fileID int, user common.Address) error {
	if NoSession(user) {
		return ErrInvalidAddress
	}
	if fileID < 0 {
		return fmt.Errorf("%w: negative file id", ErrInvalidInput)
	}
	return c.transact(ctx, caller, "allowFile", big.NewInt(int64(fileID)), user)
}

func (c *Contract) DisallowFile(ctx context.Context, caller common.Address, fileID int, user common.Address) error {
	if fileID < 0 {
		return fmt.Errorf("%w: negative file id", ErrInvalidInput)
	}
	return c.transact(ctx, caller, "disallowFile", big.NewInt(int64(fileID)), user)
}

// transact submits method and blocks until the transaction is mined.
func (c *Contract) transact(ctx context.Context, caller common.Address, method string, params ...interface{}) error {
	if NoSession(caller) || c.signer == nil {
		return ErrUnauthorized
	}
	opts, err := c.signer.Transactor(ctx)
	if err != nil {
		return &RemoteError{Op: method, Err: err}
	}
	if opts.From != caller {
		return fmt.Errorf("%w: %s cannot sign for %s", ErrUnauthorized, opts.From.Hex(), caller.Hex())
	}

	tx, err := c.bound.Transact(opts, method, params...)
	if err != nil {
		return &RemoteError{Op: method, Err: err}
	}
	zap.L().Debug("Submitted ledger transaction", zap.String("method", method), zap.String("tx", tx.Hash().Hex()))

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return &RemoteError{Op: method, Err: err}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &RemoteError{Op: method, Err: fmt.Errorf("transaction %s reverted", tx.Hash().Hex())}
	}
	return nil
}
