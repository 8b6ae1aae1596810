package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jisj/bookxmp/internal/schema"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// recordWriter is what Book and Work have in common for editing.
type recordWriter interface {
	SetTitle(title string) error
	SetLocalizedTitle(title, lang string) error
	SetIdentifier(id uuid.UUID) error
	SetDateCreated(t time.Time) error
	AddGenre(genre string) error
	AddAuthor(name string, id uuid.UUID) (*schema.Author, error)
	SetMusic(v schema.MusicValues) error
}

// recordFlags are the flags shared by `init` and `work add`.
type recordFlags struct {
	title   string
	lang    string
	id      string
	date    string
	genres  []string
	authors []string
	music   schema.MusicValues
}

func (f *recordFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "Title")
	fl.StringVar(&f.lang, "lang", "", "Language of the title (default from config)")
	fl.StringVar(&f.id, "id", "", "Library identifier (UUID)")
	fl.StringVar(&f.date, "date", "", "Creation date (YYYY-MM-DD)")
	fl.StringArrayVar(&f.genres, "genre", nil, "Genre (repeatable)")
	fl.StringArrayVar(&f.authors, "author", nil, "Author as NAME or NAME=UUID (repeatable)")
	fl.StringVar(&f.music.Key, "key", "", "Music sheets: key")
	fl.StringVar(&f.music.Instruments, "instruments", "", "Music sheets: instruments")
	fl.StringVar(&f.music.CatalogNumber, "catalog-number", "", "Music sheets: catalog number")
	fl.StringVar(&f.music.ArrangedBy, "arranged-by", "", "Music sheets: arranger")
}

func parseUUIDArg(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid argument %s %q: %w", name, value, err)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid argument %s: %w", name, bookxmp.ErrNilIdentifier)
	}
	return id, nil
}

func parseDateArg(value string) (time.Time, error) {
	t, err := time.Parse(bookxmp.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid argument date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return t, nil
}

// parseAuthorArg splits "Name=UUID". A missing UUID yields uuid.Nil.
func parseAuthorArg(value string) (string, uuid.UUID, error) {
	name, rawID, found := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", uuid.Nil, fmt.Errorf("invalid argument author %q: empty name", value)
	}
	if !found {
		return name, uuid.Nil, nil
	}
	id, err := parseUUIDArg("author id", strings.TrimSpace(rawID))
	if err != nil {
		return "", uuid.Nil, err
	}
	return name, id, nil
}

// apply writes every flag that was given to r. defaultLang is used for
// the title language when --lang is not set.
func (f *recordFlags) apply(r recordWriter, defaultLang string) error {
	if f.title != "" {
		lang := f.lang
		if lang == "" {
			lang = defaultLang
		}
		if err := r.SetLocalizedTitle(f.title, lang); err != nil {
			return err
		}
	}
	if f.id != "" {
		id, err := parseUUIDArg("id", f.id)
		if err != nil {
			return err
		}
		if err := r.SetIdentifier(id); err != nil {
			return err
		}
	}
	if f.date != "" {
		t, err := parseDateArg(f.date)
		if err != nil {
			return err
		}
		if err := r.SetDateCreated(t); err != nil {
			return err
		}
	}
	for _, g := range f.genres {
		if err := r.AddGenre(g); err != nil {
			return err
		}
	}
	for _, a := range f.authors {
		name, id, err := parseAuthorArg(a)
		if err != nil {
			return err
		}
		if _, err := r.AddAuthor(name, id); err != nil {
			return err
		}
	}
	if !f.music.IsZero() {
		if err := r.SetMusic(f.music); err != nil {
			return err
		}
	}
	return nil
}
