package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	"github.com/BeauMercier/drasticClientPortal/internal/observability/metrics"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

// ErrFolderNotFound is returned when no strategy finds a folder for the client.
var ErrFolderNotFound = errors.New("no folder found for this client")

// Strategy names, in evaluation order.
const (
	StrategyExact     = "exact"
	StrategyDomain    = "domain"
	StrategyLocalPart = "local_part"
)

// folderStrategy derives a search term from a normalized email. An empty
// term means the strategy does not apply.
type folderStrategy struct {
	name string
	term func(email string) string
}

// defaultStrategies runs from most to least precise. A domain match can pick
// a sibling client's folder when several clients share a domain.
var defaultStrategies = []folderStrategy{
	{name: StrategyExact, term: func(email string) string { return email }},
	{name: StrategyDomain, term: func(email string) string { _, domain := splitEmail(email); return domain }},
	{name: StrategyLocalPart, term: func(email string) string { local, _ := splitEmail(email); return local }},
}

// FolderResolverOptions groups dependencies for FolderResolver.
type FolderResolverOptions struct {
	Storage ports.StorageClient // Required
	Logger  *slog.Logger        // Optional
}

// FolderResolver locates a client's storage folder by matching folder names
// against the client's email.
type FolderResolver struct {
	storage    ports.StorageClient
	strategies []folderStrategy
	logger     *slog.Logger
}

// NewFolderResolver constructs a FolderResolver.
func NewFolderResolver(opts FolderResolverOptions) *FolderResolver {
	if opts.Storage == nil {
		panic("StorageClient is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderResolver{
		storage:    opts.Storage,
		strategies: defaultStrategies,
		logger:     logger.With("component", "folder_resolver"),
	}
}

// Resolution is a folder match and the strategy that produced it.
type Resolution struct {
	Folder   model.Folder
	Strategy string
}

// Resolve returns the first folder of the first strategy with any match.
// Strategies run strictly in sequence; a failing search is logged and the
// next strategy is tried. ErrFolderNotFound is returned when none match.
func (r *FolderResolver) Resolve(ctx context.Context, email string) (*Resolution, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, ErrFolderNotFound
	}

	for _, st := range r.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		term := st.term(email)
		if term == "" {
			continue
		}

		start := time.Now()
		folders, err := r.storage.SearchFolders(ctx, term)
		metrics.RecordStorageCall("search_folders", time.Since(start), err)
		if err != nil {
			metrics.RecordFolderStrategy(st.name, metrics.ResultError)
			r.logger.WarnContext(ctx, "folder search failed",
				"strategy", st.name,
				"term", term,
				"error", err,
			)
			continue
		}
		if len(folders) == 0 {
			metrics.RecordFolderStrategy(st.name, metrics.ResultEmpty)
			r.logger.DebugContext(ctx, "folder strategy found nothing", "strategy", st.name, "term", term)
			continue
		}

		metrics.RecordFolderStrategy(st.name, metrics.ResultMatched)
		r.logger.InfoContext(ctx, "folder resolved",
			"strategy", st.name,
			"folder_id", folders[0].ID,
			"folder_name", folders[0].Name,
			"candidates", len(folders),
		)
		return &Resolution{Folder: folders[0], Strategy: st.name}, nil
	}

	return nil, ErrFolderNotFound
}

// splitEmail returns the local part and domain when email has exactly one
// "@" with text on both sides, and empty strings otherwise.
func splitEmail(email string) (local, domain string) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}
