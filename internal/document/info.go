package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// InfoField names one document information field.
type InfoField string

const (
	FieldTitle        InfoField = "Title"
	FieldAuthor       InfoField = "Author"
	FieldSubject      InfoField = "Subject"
	FieldKeywords     InfoField = "Keywords"
	FieldCreator      InfoField = "Creator"
	FieldProducer     InfoField = "Producer"
	FieldCreationDate InfoField = "CreationDate"
	FieldModDate      InfoField = "ModDate"
)

// AllInfoFields lists every document information field in header order.
var AllInfoFields = []InfoField{
	FieldTitle,
	FieldAuthor,
	FieldSubject,
	FieldKeywords,
	FieldCreator,
	FieldProducer,
	FieldCreationDate,
	FieldModDate,
}

// ParseInfoField resolves a field name as used on the command line.
func ParseInfoField(name string) (InfoField, error) {
	for _, f := range AllInfoFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown document info field %q", name)
}

// Info holds the document information header. Empty strings and zero times
// mean the field is not set.
type Info struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate time.Time
	ModDate      time.Time

	// Unparsed keeps header dates that did not decode, e.g. "D:20240501"
	// written by other tools, exactly as read.
	Unparsed map[InfoField]string
}

// Get returns field f in its header form; dates render as RFC 3339 unless
// they were kept unparsed.
func (i Info) Get(f InfoField) string {
	if raw, ok := i.Unparsed[f]; ok {
		return raw
	}
	switch f {
	case FieldTitle:
		return i.Title
	case FieldAuthor:
		return i.Author
	case FieldSubject:
		return i.Subject
	case FieldKeywords:
		return i.Keywords
	case FieldCreator:
		return i.Creator
	case FieldProducer:
		return i.Producer
	case FieldCreationDate:
		return formatInfoDate(i.CreationDate)
	case FieldModDate:
		return formatInfoDate(i.ModDate)
	}
	return ""
}

// Set parses value into field f. Dates accept RFC 3339 or a plain
// calendar date.
func (i *Info) Set(f InfoField, value string) error {
	var err error
	switch f {
	case FieldTitle:
		i.Title = value
	case FieldAuthor:
		i.Author = value
	case FieldSubject:
		i.Subject = value
	case FieldKeywords:
		i.Keywords = value
	case FieldCreator:
		i.Creator = value
	case FieldProducer:
		i.Producer = value
	case FieldCreationDate:
		i.CreationDate, err = parseInfoDate(f, value)
	case FieldModDate:
		i.ModDate, err = parseInfoDate(f, value)
	}
	if err == nil {
		delete(i.Unparsed, f)
	}
	return err
}

func (i *Info) keepUnparsed(f InfoField, value string) {
	if i.Unparsed == nil {
		i.Unparsed = map[InfoField]string{}
	}
	i.Unparsed[f] = value
}

func formatInfoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseInfoDate(f InfoField, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		if d, dateErr := time.Parse(bookxmp.DateLayout, value); dateErr == nil {
			return d, nil
		}
		return time.Time{}, &bookxmp.ValueError{Field: string(f), Value: value, Kind: bookxmp.ErrMalformedDate, Err: err}
	}
	return t, nil
}

// DocumentInfo reads the information header. It is available even when the
// metadata are encrypted.
//
// A date that does not decode does not spoil the other fields: it is kept in
// Info.Unparsed and reported as a *bookxmp.ValueError for that field, joined
// with any others, alongside the otherwise complete Info.
func (d *Document) DocumentInfo() (Info, error) {
	var info Info
	if d.closed {
		return info, bookxmp.ErrDocumentClosed
	}
	var bad []error
	for _, f := range AllInfoFields {
		value, err := d.host.InfoField(string(f))
		if err != nil {
			return Info{}, d.hostErr("read info "+string(f), err, bookxmp.ErrIO)
		}
		if err := info.Set(f, value); err != nil {
			info.keepUnparsed(f, value)
			bad = append(bad, err)
		}
	}
	return info, errors.Join(bad...)
}

// SetDocumentInfo writes the named fields of info; with no fields it writes
// all of them. Empty values clear the field on the host.
func (d *Document) SetDocumentInfo(info Info, fields ...InfoField) error {
	if d.closed {
		return bookxmp.ErrDocumentClosed
	}
	if len(fields) == 0 {
		fields = AllInfoFields
	}
	for _, f := range fields {
		if _, err := ParseInfoField(string(f)); err != nil {
			return err
		}
	}
	for _, f := range fields {
		if err := d.host.SetInfoField(string(f), info.Get(f)); err != nil {
			return d.hostErr("write info "+string(f), err, bookxmp.ErrIO)
		}
	}
	d.logger.Verbose("Updated %d document info fields", len(fields))
	return nil
}
