package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/app"
	"github.com/rohits-web03/chainvault/internal/config"
	"github.com/rohits-web03/chainvault/internal/share"
)

var errNoSigner = errors.New("SIGNER_KEY is not set: vaultctl acts as the signer's account")

type Options struct {
	LogLevel string
	Yes      bool

	app    *app.App
	logger *zap.Logger
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flagSet.BoolVarP(&o.Yes, "yes", "y", false, "approve revocations without prompting")
}

// setup builds the application for commands that talk to the ledger.
func (o *Options) setup(cmd *cobra.Command) error {
	if cmd.Annotations["offline"] == "true" {
		return nil
	}
	logger, err := config.SetupLogger(o.LogLevel, config.Envs.Environment)
	if err != nil {
		return err
	}
	o.logger = logger

	a, err := app.New(cmd.Context(), config.Envs)
	if err != nil {
		return err
	}
	o.app = a
	return nil
}

func (o *Options) teardown() {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

// account is the wallet vaultctl acts as.
func (o *Options) account() (common.Address, error) {
	if o.app == nil || o.app.Signer == nil {
		return common.Address{}, errNoSigner
	}
	return o.app.Signer.Account(), nil
}

func (o *Options) confirmer(in io.Reader, out io.Writer) share.Confirmer {
	if o.Yes {
		return share.Confirmed
	}
	return promptConfirmer(in, out)
}

// promptConfirmer asks on out and reads y/yes from in.
func promptConfirmer(in io.Reader, out io.Writer) share.Confirmer {
	reader := bufio.NewReader(in)
	return share.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

func stdin() io.Reader { return os.Stdin }
