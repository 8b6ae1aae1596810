package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jisj/bookxmp/internal/schema"
	"github.com/jisj/bookxmp/internal/tui"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// recordReader is what Book and Work have in common for display.
type recordReader interface {
	Title() (string, error)
	TitleLang() (string, error)
	Identifier() (uuid.UUID, bool, error)
	DateCreated() (time.Time, bool, error)
	Genres() ([]string, error)
	Authors() ([]*schema.Author, error)
	Music() (*schema.MusicAttributes, error)
}

type authorView struct {
	Name string `json:"name"`
	Lang string `json:"lang,omitempty"`
	ID   string `json:"id,omitempty"`
}

type musicView struct {
	Key           string `json:"key,omitempty"`
	Instruments   string `json:"instruments,omitempty"`
	CatalogNumber string `json:"catalogNumber,omitempty"`
	ArrangedBy    string `json:"arrangedBy,omitempty"`
}

type recordView struct {
	Title       string            `json:"title"`
	TitleLang   string            `json:"titleLang,omitempty"`
	ID          string            `json:"id,omitempty"`
	DateCreated string            `json:"dateCreated,omitempty"`
	Genres      []string          `json:"genres"`
	Authors     []authorView      `json:"authors"`
	Music       *musicView        `json:"music,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
	Works       []recordView      `json:"works,omitempty"`
}

func readRecord(r recordReader) (recordView, error) {
	var v recordView
	var err error

	if v.Title, err = r.Title(); err != nil {
		return v, err
	}
	if v.TitleLang, err = r.TitleLang(); err != nil {
		return v, err
	}
	if id, ok, err := r.Identifier(); err != nil {
		return v, err
	} else if ok {
		v.ID = id.String()
	}
	if d, ok, err := r.DateCreated(); err != nil {
		return v, err
	} else if ok {
		v.DateCreated = d.Format(bookxmp.DateLayout)
	}
	if v.Genres, err = r.Genres(); err != nil {
		return v, err
	}

	authors, err := r.Authors()
	if err != nil {
		return v, err
	}
	v.Authors = make([]authorView, 0, len(authors))
	for _, a := range authors {
		av, err := readAuthor(a)
		if err != nil {
			return v, err
		}
		v.Authors = append(v.Authors, av)
	}

	m, err := r.Music()
	if err != nil {
		return v, err
	}
	mv, err := m.Values()
	if err != nil {
		return v, err
	}
	if !mv.IsZero() {
		v.Music = &musicView{
			Key:           mv.Key,
			Instruments:   mv.Instruments,
			CatalogNumber: mv.CatalogNumber,
			ArrangedBy:    mv.ArrangedBy,
		}
	}
	return v, nil
}

func readAuthor(a *schema.Author) (authorView, error) {
	var av authorView
	var err error
	if av.Name, err = a.Name(); err != nil {
		return av, err
	}
	if av.Lang, err = a.Lang(); err != nil {
		return av, err
	}
	id, ok, err := a.Identifier()
	if err != nil {
		return av, err
	}
	if ok {
		av.ID = id.String()
	}
	return av, nil
}

// reservedProperties are top-level book properties shown as typed fields.
var reservedProperties = map[string]bool{
	schema.IdentifierField:  true,
	schema.DateCreatedField: true,
	schema.TitleField:       true,
}

// readBook builds the full view of a book, its works and custom properties.
func readBook(b *schema.Book) (recordView, error) {
	v, err := readRecord(b)
	if err != nil {
		return v, err
	}

	props, err := b.Properties()
	if err != nil {
		return v, err
	}
	for name, value := range props {
		if reservedProperties[name] {
			continue
		}
		if v.Properties == nil {
			v.Properties = map[string]string{}
		}
		v.Properties[name] = value
	}

	works, err := b.Works()
	if err != nil {
		return v, err
	}
	for _, w := range works {
		wv, err := readRecord(w)
		if err != nil {
			return v, err
		}
		v.Works = append(v.Works, wv)
	}
	return v, nil
}

const (
	labelWidth = 14
	ruleWidth  = 40
)

func renderRecord(w io.Writer, s tui.Styles, v recordView, indent int) {
	pad := strings.Repeat(" ", indent)
	title := v.Title
	if v.TitleLang != "" {
		title = fmt.Sprintf("%s [%s]", v.Title, v.TitleLang)
	}
	fmt.Fprintln(w, pad+s.Field("Title", labelWidth, title))
	fmt.Fprintln(w, pad+s.Field("Identifier", labelWidth, v.ID))
	fmt.Fprintln(w, pad+s.Field("Created", labelWidth, v.DateCreated))
	fmt.Fprintln(w, pad+s.Field("Genres", labelWidth, strings.Join(v.Genres, ", ")))

	if len(v.Authors) == 0 {
		fmt.Fprintln(w, pad+s.Field("Authors", labelWidth, ""))
	} else {
		fmt.Fprintln(w, pad+s.Label.Render("Authors:"))
		names := make([]string, 0, len(v.Authors))
		for _, a := range v.Authors {
			name := a.Name
			if a.Lang != "" {
				name += " [" + a.Lang + "]"
			}
			if a.ID != "" {
				name += " " + s.Muted.Render(a.ID)
			}
			names = append(names, name)
		}
		fmt.Fprint(w, s.List(names, indent+2))
	}

	if v.Music != nil {
		fmt.Fprintln(w, pad+s.Label.Render("Music sheets:"))
		inner := pad + "  "
		fmt.Fprintln(w, inner+s.Field("Key", labelWidth-2, v.Music.Key))
		fmt.Fprintln(w, inner+s.Field("Instruments", labelWidth-2, v.Music.Instruments))
		fmt.Fprintln(w, inner+s.Field("Catalog no.", labelWidth-2, v.Music.CatalogNumber))
		fmt.Fprintln(w, inner+s.Field("Arranged by", labelWidth-2, v.Music.ArrangedBy))
	}
}

func renderBook(w io.Writer, s tui.Styles, path string, v recordView) {
	fmt.Fprintln(w, s.Heading.Render(path))
	renderRecord(w, s, v, 0)

	if len(v.Properties) > 0 {
		fmt.Fprintln(w, s.Label.Render("Properties:"))
		names := make([]string, 0, len(v.Properties))
		for name := range v.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(w, "  "+s.Field(name, labelWidth-2, v.Properties[name]))
		}
	}

	rule := s.Muted.Render(strings.Repeat("-", min(tui.Width(w, ruleWidth), ruleWidth)))
	for i, wv := range v.Works {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, s.Heading.Render(fmt.Sprintf("Work %d", i+1)))
		renderRecord(w, s, wv, 2)
	}
}
