package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jisj/bookxmp/internal/catalog"
	"github.com/jisj/bookxmp/internal/checksum"
	"github.com/jisj/bookxmp/internal/files/scanner"
	"github.com/jisj/bookxmp/internal/host"
	"github.com/jisj/bookxmp/internal/retry"
	"github.com/jisj/bookxmp/internal/xmp"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Publish book metadata to a PostgreSQL catalog",
		Long: `Publish book metadata to a PostgreSQL catalog.

The connection string comes from --dsn, catalog.dsn in bookxmp.yaml or
BOOKXMP_CATALOG_DSN.`,
	}
	cmd.PersistentFlags().String("dsn", "", "Catalog connection string (postgres://...)")
	cmd.AddCommand(newCatalogPushCmd(), newCatalogListCmd())
	return cmd
}

func connectCatalog(cmd *cobra.Command, s *session) (*catalog.Store, error) {
	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		dsn = s.cfg.Catalog.DSN
	}
	if dsn == "" {
		return nil, fmt.Errorf("%w: no catalog connection string (use --dsn or catalog.dsn)", bookxmp.ErrInvalidConfig)
	}
	timeout, err := s.cfg.Catalog.Timeout()
	if err != nil {
		return nil, err
	}
	store, err := catalog.Connect(cmd.Context(), dsn, catalog.Options{
		MaxConns:       int32(s.cfg.Catalog.MaxConns),
		ConnectTimeout: timeout,
		Retry:          retry.NewExponentialBackoff(s.cfg.Catalog.Attempts()),
		Logger:         s.logger,
	})
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(cmd.Context()); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func newCatalogPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push [dir]",
		Short: "Upsert every book under a directory into the catalog",
		Long: `Walk dir (default: the configured library) for sidecar documents and
upsert each book into the catalog. Books without an identifier, encrypted
documents and YAML files that are not sidecars are skipped. Unchanged books
are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			dir := s.cfg.Library
			if len(args) == 1 {
				dir = args[0]
			}

			store, err := connectCatalog(cmd, s)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := scanner.NewScanner(checksum.New(), s.fs).ScanLibrary(dir)
			if err != nil {
				return err
			}
			s.logger.Verbose("Found %d sidecar candidates in %s", len(entries), dir)

			var written, unchanged, skipped int
			for _, e := range entries {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				record, ok, err := loadRecord(s, e.Path)
				if err != nil {
					return err
				}
				if !ok {
					skipped++
					continue
				}
				changed, err := store.Upsert(cmd.Context(), record)
				if err != nil {
					return err
				}
				if changed {
					written++
					s.logger.Verbose("Pushed %s (%s, sha256 %.12s)", e.RelativePath, record.ID, e.Checksum)
				} else {
					unchanged++
				}
			}

			s.done("Catalog updated: %d written, %d unchanged, %d skipped", written, unchanged, skipped)
			return nil
		},
	}
}

// loadRecord reads the book at path. ok is false when the file is not a
// sidecar, the metadata are encrypted or the book has no identifier.
func loadRecord(s *session, path string) (catalog.Record, bool, error) {
	doc, err := s.open(path)
	if errors.Is(err, host.ErrUnsupportedFormat) {
		s.logger.Verbose("Skipping %s: not a sidecar document", path)
		return catalog.Record{}, false, nil
	}
	if err != nil {
		return catalog.Record{}, false, err
	}
	defer doc.Close()

	if doc.IsMetadataEncrypted() {
		s.logger.Info("Skipping %s: metadata are encrypted", path)
		return catalog.Record{}, false, nil
	}
	meta, err := doc.Metadata()
	if err != nil {
		return catalog.Record{}, false, err
	}
	book, err := doc.Book()
	if err != nil {
		return catalog.Record{}, false, err
	}
	packet, err := xmp.Serialize(meta)
	if err != nil {
		return catalog.Record{}, false, err
	}

	record, err := catalog.RecordFromBook(book, packet)
	if errors.Is(err, bookxmp.ErrNilIdentifier) {
		s.logger.Info("Skipping %s: book has no identifier", path)
		return catalog.Record{}, false, nil
	}
	if err != nil {
		return catalog.Record{}, false, fmt.Errorf("%s: %w", path, err)
	}
	return record, true, nil
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalogued books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			store, err := connectCatalog(cmd, s)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(s.out, s.styles.Muted.Render("Catalog is empty"))
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(s.out, "%s  %s  %s\n",
					s.styles.Muted.Render(r.ID.String()),
					s.styles.Heading.Render(r.Title),
					s.styles.Label.Render(fmt.Sprintf("%d work(s), %s", r.WorkCount, strings.Join(r.Authors, ", "))))
			}
			return nil
		},
	}
}
