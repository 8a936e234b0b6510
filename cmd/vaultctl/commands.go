package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rohits-web03/chainvault/internal/chatbot"
	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/lookup"
	"github.com/rohits-web03/chainvault/internal/models"
	"github.com/rohits-web03/chainvault/internal/presenter"
	"github.com/rohits-web03/chainvault/internal/views"
)

func newFilesCommand(opts *Options) *cobra.Command {
	var (
		public                bool
		search, typ, sortName string
	)
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List your files, or public files with --public",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := presenter.ParseQuery(search, typ, sortName)
			if err != nil {
				return err
			}

			v := models.Public()
			if !public {
				account, err := opts.account()
				if err != nil {
					return err
				}
				v = models.Owned(account.Hex())
			}

			res := opts.app.Views.Resolve(cmd.Context(), v)
			if res.Failed() {
				return errors.New(res.Message)
			}
			printListing(cmd.OutOrStdout(), presenter.NewListing(presenter.Present(res.Files, q)), public)
			return nil
		},
	}
	cmd.Flags().BoolVar(&public, "public", false, "list every public file")
	cmd.Flags().StringVar(&search, "search", "", "match name, description or tag")
	cmd.Flags().StringVar(&typ, "type", presenter.TypeAll, "all, image, document, video, audio or other")
	cmd.Flags().StringVar(&sortName, "sort", string(presenter.SortNewest), "newest, oldest, name or size")
	return cmd
}

func newSharedCommand(opts *Options) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "shared <owner>",
		Short: "List the files another wallet shares with you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := opts.account()
			if err != nil {
				return err
			}

			session := lookup.NewSession(opts.app.Views, nil, account)
			if err := session.Query(cmd.Context(), args[0]); err != nil {
				return err
			}
			session.SetTagFilter(tag)

			snap := session.Snapshot()
			out := cmd.OutOrStdout()
			switch snap.Notice {
			case lookup.NoticeDenied, lookup.NoticeFailed:
				return errors.New(snap.Message)
			case lookup.NoticeNoFiles:
				fmt.Fprintln(out, "This wallet has no files.")
				return nil
			case lookup.NoticeNoMatches:
				fmt.Fprintf(out, "No files tagged %q.\n", snap.Tag)
				return nil
			}
			printListing(out, presenter.NewListing(snap.Files), true)
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only files with a tag containing this text")
	return cmd
}

func newAccessCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "Manage who can see your files",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Wallets with access to all of your files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := opts.account()
			if err != nil {
				return err
			}
			res := opts.app.Views.Resolve(cmd.Context(), models.SharedGeneral(account.Hex()))
			if res.Failed() {
				return errors.New(res.Message)
			}
			printGrants(cmd.OutOrStdout(), res.Grants)
			return nil
		},
	}

	grant := &cobra.Command{
		Use:   "grant <address>",
		Short: "Give a wallet access to all of your files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := opts.account()
			if err != nil {
				return err
			}
			res, err := opts.app.Shares.GrantGeneral(cmd.Context(), account, args[0])
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Access granted successfully!")
			printGrants(cmd.OutOrStdout(), res.Grants)
			return nil
		},
	}

	revoke := &cobra.Command{
		Use:   "revoke <address>",
		Short: "Remove a wallet's access to all of your files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := opts.account()
			if err != nil {
				return err
			}
			res, err := opts.app.Shares.RevokeGeneral(cmd.Context(), account, args[0],
				opts.confirmer(stdin(), cmd.OutOrStdout()))
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Access revoked successfully!")
			printGrants(cmd.OutOrStdout(), res.Grants)
			return nil
		},
	}

	files := &cobra.Command{
		Use:   "files",
		Short: "Who can see which of your files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := opts.account()
			if err != nil {
				return err
			}
			res := opts.app.Views.Resolve(cmd.Context(), models.SharedSelective(account.Hex()))
			if res.Failed() {
				return errors.New(res.Message)
			}
			printSelective(cmd.OutOrStdout(), res)
			return nil
		},
	}

	grantFile := &cobra.Command{
		Use:   "grant-file <file-id> <address>",
		Short: "Give a wallet access to one file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := opts.account()
			if err != nil {
				return err
			}
			fileID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}
			res, err := opts.app.Shares.GrantFile(cmd.Context(), account, fileID, args[1])
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "File access granted successfully!")
			printSelective(cmd.OutOrStdout(), res)
			return nil
		},
	}

	revokeFile := &cobra.Command{
		Use:   "revoke-file <file-id> <address>",
		Short: "Remove a wallet's access to one file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := opts.account()
			if err != nil {
				return err
			}
			fileID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}
			res, err := opts.app.Shares.RevokeFile(cmd.Context(), account, fileID, args[1],
				opts.confirmer(stdin(), cmd.OutOrStdout()))
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "File access revoked successfully!")
			printSelective(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.AddCommand(list, grant, revoke, files, grantFile, revokeFile)
	return cmd
}

func newUploadCommand(opts *Options) *cobra.Command {
	var (
		rec  models.FileRecord
		typ  string
		tags []string
	)
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Record a file in the local ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := opts.account()
			if err != nil {
				return err
			}
			if opts.app.Local == nil {
				return errors.New("upload is only available with LEDGER_BACKEND=local")
			}
			if rec.FileName == "" || rec.ContentHash == "" {
				return errors.New("--name and --hash are required")
			}
			if opts.app.R2 != nil {
				ok, err := opts.app.R2.Exists(cmd.Context(), rec.ContentHash)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no object %s in the blob store", rec.ContentHash)
				}
			}

			rec.FileType = models.ParseFileType(typ)
			rec.Tags = lo.Compact(lo.Map(tags, func(t string, _ int) string { return strings.TrimSpace(t) }))
			saved, err := opts.app.Local.Upload(cmd.Context(), account, rec)
			if err != nil {
				return err
			}
			opts.app.Views.Invalidate(account.Hex())
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as file %d\n", saved.FileName, saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&rec.FileName, "name", "", "file name")
	cmd.Flags().StringVar(&typ, "type", string(models.FileTypeOther), "image, document, video, audio or other")
	cmd.Flags().StringVar(&rec.ContentHash, "hash", "", "content hash of the stored blob")
	cmd.Flags().Int64Var(&rec.FileSize, "size", 0, "size in bytes")
	cmd.Flags().BoolVar(&rec.IsPublic, "public", false, "list the file publicly")
	cmd.Flags().StringVar(&rec.Description, "description", "", "free text description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag, repeatable")
	return cmd
}

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "chat <message>",
		Short:       "Ask the help assistant",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"offline": "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), chatbot.Reply(strings.Join(args, " ")))
		},
	}
}

// describe turns a share error into the message the user should see.
func describe(err error) error {
	switch ledger.Classify(err) {
	case ledger.KindInvalidInput:
		return fmt.Errorf("please enter a valid Ethereum address: %w", err)
	case ledger.KindRemoteFailure:
		return fmt.Errorf("the ledger rejected the change, please try again: %w", err)
	}
	return err
}

func printListing(w io.Writer, l presenter.Listing, withOwner bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	header := "ID\tNAME\tTYPE\tSIZE\tUPLOADED\tTAGS"
	if withOwner {
		header += "\tOWNER"
	}
	fmt.Fprintln(tw, header)
	for _, f := range l.Files {
		row := fmt.Sprintf("%d\t%s %s\t%s\t%s\t%s\t%s",
			f.ID, f.Icon, f.FileName, f.FileType, f.SizeLabel,
			f.UploadedAt.Local().Format(time.DateTime), strings.Join(f.Tags, ","))
		if withOwner {
			row += "\t" + presenter.ShortAddress(f.Owner, 6, 4)
		}
		fmt.Fprintln(tw, row)
	}
	fmt.Fprintf(tw, "\n%d files, %s\n", l.Count, l.TotalSize)
}

func printGrants(w io.Writer, grants []models.AccessGrant) {
	active := lo.Filter(grants, func(g models.AccessGrant, _ int) bool { return g.Access })
	if len(active) == 0 {
		fmt.Fprintln(w, "No wallet has general access.")
		return
	}
	for _, g := range active {
		fmt.Fprintln(w, g.User)
	}
}

func printSelective(w io.Writer, res views.Result) {
	if len(res.Selective) == 0 {
		fmt.Fprintln(w, "No per-file grants.")
		return
	}
	names := lo.SliceToMap(res.Files, func(f models.FileRecord) (int, string) { return f.ID, f.FileName })
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "USER\tFILES")
	for _, uf := range res.Selective {
		labels := lo.Map(uf.FileIDs, func(id int, _ int) string {
			if name, ok := names[id]; ok {
				return fmt.Sprintf("%d (%s)", id, name)
			}
			return strconv.Itoa(id)
		})
		fmt.Fprintf(tw, "%s\t%s\n", uf.User, strings.Join(labels, ", "))
	}
}
