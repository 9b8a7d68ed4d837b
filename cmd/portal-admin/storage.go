package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/BeauMercier/drasticClientPortal/internal/bootstrap"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	"github.com/BeauMercier/drasticClientPortal/internal/service"
)

type resolveOptions struct {
	Email string
}

type listFilesOptions struct {
	Email    string
	FolderID string
	JSON     bool
}

type folderResolver interface {
	Resolve(ctx context.Context, email string) (*service.Resolution, error)
}

type fileLister interface {
	TargetFolder(ctx context.Context, folderID, email string) (string, error)
	List(ctx context.Context, folderID string) ([]model.FileEntry, error)
}

func runResolveFolder(cmdCtx *commandContext, args []string) error {
	opts, err := parseResolveFlags(args)
	if err != nil {
		return err
	}
	return withFileService(cmdCtx, func(ctx context.Context, folders *service.FolderResolver, _ *service.FileService) error {
		return resolveFolder(ctx, cmdCtx.Out, folders, opts.Email)
	})
}

func resolveFolder(ctx context.Context, w io.Writer, folders folderResolver, email string) error {
	res, err := folders.Resolve(ctx, email)
	if err != nil {
		return err
	}
	return writef(w, "%s -> %s (%s) via %s match\n", model.NormalizeEmail(email), res.Folder.Name, res.Folder.ID, res.Strategy)
}

func runListFiles(cmdCtx *commandContext, args []string) error {
	opts, err := parseListFilesFlags(args)
	if err != nil {
		return err
	}
	return withFileService(cmdCtx, func(ctx context.Context, _ *service.FolderResolver, files *service.FileService) error {
		return listFiles(ctx, cmdCtx.Out, files, opts)
	})
}

func listFiles(ctx context.Context, w io.Writer, files fileLister, opts listFilesOptions) error {
	folderID, err := files.TargetFolder(ctx, opts.FolderID, opts.Email)
	if err != nil {
		return err
	}
	entries, err := files.List(ctx, folderID)
	if err != nil {
		return err
	}
	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	return printFileTable(w, folderID, entries)
}

func printFileTable(w io.Writer, folderID string, entries []model.FileEntry) error {
	if err := writef(w, "Folder %s: %d item(s)\n", folderID, len(entries)); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writeln(tw, "NAME\tTYPE\tSIZE\tMODIFIED\tID"); err != nil {
		return err
	}
	for _, e := range entries {
		kind := "file"
		if e.IsFolder {
			kind = "folder"
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n", e.Name, kind, e.Size, e.ModifiedTime, e.ID); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func withFileService(
	cmdCtx *commandContext,
	f func(context.Context, *service.FolderResolver, *service.FileService) error,
) error {
	if err := cmdCtx.Config.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, defaultCommandTimeout)
	defer cancel()

	storage, err := bootstrap.NewStorageClient(ctx, cmdCtx.Config.Storage, cmdCtx.Logger)
	if err != nil {
		return err
	}
	folders := service.NewFolderResolver(service.FolderResolverOptions{Storage: storage, Logger: cmdCtx.Logger})
	files := service.NewFileService(service.FileServiceOptions{Storage: storage, Folders: folders, Logger: cmdCtx.Logger})
	return f(ctx, folders, files)
}

func parseResolveFlags(args []string) (resolveOptions, error) {
	fs := flag.NewFlagSet("resolve-folder", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts resolveOptions
	fs.StringVar(&opts.Email, "email", "", "Client email to resolve (required)")

	if err := fs.Parse(args); err != nil {
		return resolveOptions{}, err
	}
	if strings.TrimSpace(opts.Email) == "" {
		return resolveOptions{}, errors.New("--email is required")
	}
	return opts, nil
}

func parseListFilesFlags(args []string) (listFilesOptions, error) {
	fs := flag.NewFlagSet("list-files", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listFilesOptions
	fs.StringVar(&opts.Email, "email", "", "Client email whose folder is listed")
	fs.StringVar(&opts.FolderID, "folder-id", "", "Explicit Drive folder ID (overrides --email)")
	fs.BoolVar(&opts.JSON, "json", false, "Print entries as JSON")

	if err := fs.Parse(args); err != nil {
		return listFilesOptions{}, err
	}
	if strings.TrimSpace(opts.Email) == "" && strings.TrimSpace(opts.FolderID) == "" {
		return listFilesOptions{}, errors.New("--email or --folder-id is required")
	}
	return opts, nil
}
