package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/jisj/bookxmp/internal/config"
	"github.com/jisj/bookxmp/internal/files/filesystem"
	"github.com/jisj/bookxmp/internal/logging"
	"github.com/jisj/bookxmp/internal/schema"
	"github.com/jisj/bookxmp/internal/tui"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

const parisID = "b47665da-6c75-4632-952d-a2ef2619600c"

// run executes the root command with args against a config file in dir.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	cfg := filepath.Join(dir, "bookxmp.yaml")
	if _, err := os.Stat(cfg); err != nil {
		content := "library: " + dir + "\nlanguage: x-default\nproducer: bookxmp-test\n"
		if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config", cfg))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, stderr, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("bookxmp %s: %v\n%s", strings.Join(args, " "), err, stderr)
	}
	return out
}

func showJSON(t *testing.T, dir, file string) recordView {
	t.Helper()
	out := mustRun(t, dir, "show", file, "--json")
	var v recordView
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode show output: %v\n%s", err, out)
	}
	return v
}

func initParis(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "paris.yaml")
	mustRun(t, dir, "init", file,
		"--title", "An American In Paris", "--lang", "en",
		"--id", parisID, "--date", "1928-12-13",
		"--genre", "music", "--genre", "music_sheets",
		"--author", "George Gershwin")
	return dir, file
}

func TestCommands_ArgsValidation(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"show"},
		{"dump"},
		{"info"},
		{"set", "paris.yaml"},
		{"set", "paris.yaml", "title"},
		{"work", "add"},
		{"info", "set", "paris.yaml"},
		{"init", "paris.yaml"}, // --title is required
		{"show", "a.yaml", "b.yaml"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			_, _, err := run(t, dir, args...)
			if err == nil {
				t.Fatal("Expected usage error")
			}
			if code := bookxmp.ExitCodeForError(err); code != bookxmp.ExitUsageError {
				t.Errorf("Expected exit code %d (usage), got %d for: %v", bookxmp.ExitUsageError, code, err)
			}
		})
	}
}

func TestMissingArgumentMessageHasExample(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "set", "paris.yaml")
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "<field> <value>") {
		t.Errorf("Expected missing argument names, got: %v", err)
	}
	if !strings.Contains(err.Error(), "Example:") {
		t.Errorf("Expected example in message, got: %v", err)
	}
}

func TestInitAndShow(t *testing.T) {
	dir, file := initParis(t)

	v := showJSON(t, dir, file)
	if v.Title != "An American In Paris" || v.TitleLang != "en" {
		t.Errorf("title = %q [%q]", v.Title, v.TitleLang)
	}
	if v.ID != parisID {
		t.Errorf("id = %q, want %q", v.ID, parisID)
	}
	if v.DateCreated != "1928-12-13" {
		t.Errorf("date = %q", v.DateCreated)
	}
	if strings.Join(v.Genres, ",") != "music,music_sheets" {
		t.Errorf("genres = %v", v.Genres)
	}
	if len(v.Authors) != 1 || v.Authors[0].Name != "George Gershwin" || v.Authors[0].ID != "" {
		t.Errorf("authors = %+v", v.Authors)
	}
	if v.Music != nil {
		t.Errorf("music should be absent, got %+v", v.Music)
	}

	text := mustRun(t, dir, "show", file)
	for _, want := range []string{"An American In Paris [en]", parisID, "George Gershwin", "music, music_sheets"} {
		if !strings.Contains(text, want) {
			t.Errorf("show output missing %q:\n%s", want, text)
		}
	}
}

func TestInit_GeneratesIdentifierAndInfo(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "book.yaml")
	mustRun(t, dir, "init", file, "--title", "Suites", "--author", "Johann Sebastian Bach=0d2c8d6e-7b39-4a4f-9a53-2d5d3b0c1c11")

	v := showJSON(t, dir, file)
	if v.ID == "" {
		t.Error("Expected a generated identifier")
	}
	if v.TitleLang != "x-default" {
		t.Errorf("Expected configured language, got %q", v.TitleLang)
	}
	if v.Authors[0].ID != "0d2c8d6e-7b39-4a4f-9a53-2d5d3b0c1c11" {
		t.Errorf("author id = %q", v.Authors[0].ID)
	}

	info := mustRun(t, dir, "info", file)
	for _, want := range []string{"Suites", "Johann Sebastian Bach", "bookxmp-test"} {
		if !strings.Contains(info, want) {
			t.Errorf("info output missing %q:\n%s", want, info)
		}
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir, file := initParis(t)

	_, _, err := run(t, dir, "init", file, "--title", "Other")
	if err == nil {
		t.Fatal("Expected error for existing file")
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Errorf("Expected hint about --force, got: %v", err)
	}

	mustRun(t, dir, "init", file, "--title", "Other", "--force")
	if v := showJSON(t, dir, file); v.Title != "Other" {
		t.Errorf("title = %q after --force", v.Title)
	}
}

func TestInit_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "book.yaml")

	tests := []struct {
		name string
		args []string
	}{
		{"bad id", []string{"--id", "not-a-uuid"}},
		{"nil id", []string{"--id", "00000000-0000-0000-0000-000000000000"}},
		{"bad date", []string{"--date", "13/12/1928"}},
		{"empty author", []string{"--author", "=0d2c8d6e-7b39-4a4f-9a53-2d5d3b0c1c11"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"init", file, "--title", "T"}, tt.args...)
			_, _, err := run(t, dir, args...)
			if err == nil {
				t.Fatal("Expected error")
			}
			if code := bookxmp.ExitCodeForError(err); code != bookxmp.ExitUsageError {
				t.Errorf("Expected usage exit code, got %d for: %v", code, err)
			}
		})
	}
}

func TestSet_BookFields(t *testing.T) {
	dir, file := initParis(t)

	mustRun(t, dir, "set", file, "title", "Ein Amerikaner in Paris", "--lang", "de")
	mustRun(t, dir, "set", file, "genre", "orchestral")
	mustRun(t, dir, "set", file, "author", "Frank Campbell-Watson")
	mustRun(t, dir, "set", file, "key", "F-dur")
	mustRun(t, dir, "set", file, "catalog-number", "Op. 1")
	mustRun(t, dir, "set", file, "prop.Publisher", "New World Music")

	v := showJSON(t, dir, file)
	if v.Title != "Ein Amerikaner in Paris" || v.TitleLang != "de" {
		t.Errorf("title = %q [%q]", v.Title, v.TitleLang)
	}
	if len(v.Genres) != 3 || v.Genres[2] != "orchestral" {
		t.Errorf("genres = %v", v.Genres)
	}
	if len(v.Authors) != 2 || v.Authors[1].Name != "Frank Campbell-Watson" {
		t.Errorf("authors = %+v", v.Authors)
	}
	if v.Music == nil || v.Music.Key != "F-dur" || v.Music.CatalogNumber != "Op. 1" {
		t.Errorf("music = %+v", v.Music)
	}
	if v.Properties["Publisher"] != "New World Music" {
		t.Errorf("properties = %v", v.Properties)
	}
	if _, ok := v.Properties[schema.IdentifierField]; ok {
		t.Error("identifier must not be listed as a custom property")
	}
}

func TestSet_TitleKeepsLanguage(t *testing.T) {
	dir, file := initParis(t)

	mustRun(t, dir, "set", file, "title", "Rhapsody in Blue")
	v := showJSON(t, dir, file)
	if v.Title != "Rhapsody in Blue" || v.TitleLang != "en" {
		t.Errorf("title = %q [%q]", v.Title, v.TitleLang)
	}
}

func TestSet_Unchanged(t *testing.T) {
	dir, file := initParis(t)

	_, stderr, err := run(t, dir, "set", file, "title", "An American In Paris")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(stderr, "unchanged") {
		t.Errorf("Expected unchanged notice, got: %q", stderr)
	}
}

func TestSet_Errors(t *testing.T) {
	dir, file := initParis(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown field", []string{"set", file, "publisher", "x"}, bookxmp.ExitUsageError},
		{"work out of range", []string{"set", file, "key", "C", "--work", "3"}, bookxmp.ExitUsageError},
		{"negative work", []string{"set", file, "key", "C", "--work", "-1"}, bookxmp.ExitUsageError},
		{"property on work", []string{"set", file, "prop.X", "y", "--work", "1"}, bookxmp.ExitUsageError},
		{"missing file", []string{"set", filepath.Join(dir, "nope.yaml"), "key", "C"}, bookxmp.ExitDocumentError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, dir, tt.args...)
			if err == nil {
				t.Fatal("Expected error")
			}
			if code := bookxmp.ExitCodeForError(err); code != tt.code {
				t.Errorf("Expected exit code %d, got %d for: %v", tt.code, code, err)
			}
		})
	}
}

func TestWorkAddAndSet(t *testing.T) {
	dir, file := initParis(t)

	mustRun(t, dir, "work", "add", file, "--title", "Suite No. 1", "--key", "G-dur",
		"--catalog-number", "BWV 1007", "--author", "Johann Sebastian Bach")
	mustRun(t, dir, "work", "add", file, "--title", "Suite No. 2")
	mustRun(t, dir, "set", file, "arranged-by", "Pau Casals", "--work", "2")

	v := showJSON(t, dir, file)
	if len(v.Works) != 2 {
		t.Fatalf("works = %d, want 2", len(v.Works))
	}
	w1, w2 := v.Works[0], v.Works[1]
	if w1.Title != "Suite No. 1" || w1.Music == nil || w1.Music.Key != "G-dur" || w1.Music.CatalogNumber != "BWV 1007" {
		t.Errorf("work 1 = %+v", w1)
	}
	if len(w1.Authors) != 1 || w1.Authors[0].Name != "Johann Sebastian Bach" {
		t.Errorf("work 1 authors = %+v", w1.Authors)
	}
	if w2.Title != "Suite No. 2" || w2.Music == nil || w2.Music.ArrangedBy != "Pau Casals" {
		t.Errorf("work 2 = %+v", w2)
	}
	if v.Music != nil {
		t.Errorf("book music must stay unset, got %+v", v.Music)
	}

	text := mustRun(t, dir, "show", file)
	if !strings.Contains(text, "Work 2") || !strings.Contains(text, "Pau Casals") {
		t.Errorf("show output missing works:\n%s", text)
	}
}

func TestInfoSet(t *testing.T) {
	dir, file := initParis(t)

	mustRun(t, dir, "info", "set", file, "Subject=Orchestral score", "ModDate=2024-05-01", "Producer=")
	out := mustRun(t, dir, "info", file)
	if !strings.Contains(out, "Orchestral score") {
		t.Errorf("info output missing subject:\n%s", out)
	}
	if !strings.Contains(out, "2024-05-01T00:00:00Z") {
		t.Errorf("info output missing mod date:\n%s", out)
	}
	if strings.Contains(out, "bookxmp-test") {
		t.Errorf("producer should be cleared:\n%s", out)
	}

	_, _, err := run(t, dir, "info", "set", file, "Publisher=x")
	if code := bookxmp.ExitCodeForError(err); code != bookxmp.ExitUsageError {
		t.Errorf("unknown info field: exit code %d for %v", code, err)
	}
	_, _, err = run(t, dir, "info", "set", file, "ModDate=yesterday")
	if code := bookxmp.ExitCodeForError(err); code != bookxmp.ExitMetadataInvalid {
		t.Errorf("malformed date: exit code %d for %v", code, err)
	}
}

func TestDump(t *testing.T) {
	dir, file := initParis(t)

	out := mustRun(t, dir, "dump", file)
	if !strings.Contains(out, schema.BookNS) {
		t.Errorf("dump missing book namespace:\n%s", out)
	}
	if !strings.Contains(out, "George Gershwin") {
		t.Errorf("dump missing author:\n%s", out)
	}

	packet := mustRun(t, dir, "dump", file, "--packet")
	if !strings.Contains(packet, "<?xpacket begin=") || !strings.Contains(packet, "rdf:RDF") {
		t.Errorf("unexpected packet:\n%s", packet)
	}
}

func TestEncryptedDocument(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "locked.yaml")
	sidecar := `format: bookxmp/v1
info:
  Title: Locked
encryption:
  encrypted: true
  encrypt_metadata: true
metadata: "not a packet"
`
	if err := os.WriteFile(file, []byte(sidecar), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := run(t, dir, "show", file)
	if code := bookxmp.ExitCodeForError(err); code != bookxmp.ExitEncryptedMetadata {
		t.Errorf("show: exit code %d for %v", code, err)
	}

	out := mustRun(t, dir, "info", file)
	if !strings.Contains(out, "Locked") || !strings.Contains(out, "encrypted") {
		t.Errorf("info output:\n%s", out)
	}
}

func TestInfoShowsForeignDates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "foreign.yaml")
	sidecar := `format: bookxmp/v1
info:
  Title: Imported
  ModDate: "D:20240501120000Z"
`
	if err := os.WriteFile(file, []byte(sidecar), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, dir, "info", file)
	for _, want := range []string{"Imported", "D:20240501120000Z", "ModDate is not a valid date"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestMalformedPacket(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(file, []byte("format: bookxmp/v1\nmetadata: \"<x:xmpmeta\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := run(t, dir, "show", file)
	if code := bookxmp.ExitCodeForError(err); code != bookxmp.ExitMetadataInvalid {
		t.Errorf("Expected exit code %d, got %d for: %v", bookxmp.ExitMetadataInvalid, code, err)
	}
}

func TestCatalog_MissingDSN(t *testing.T) {
	t.Setenv("BOOKXMP_CATALOG_DSN", "")
	_, _, err := run(t, t.TempDir(), "catalog", "list")
	if code := bookxmp.ExitCodeForError(err); code != bookxmp.ExitConfigError {
		t.Errorf("Expected exit code %d, got %d for: %v", bookxmp.ExitConfigError, code, err)
	}
}

func TestLoadRecord(t *testing.T) {
	dir, file := initParis(t)
	other := filepath.Join(dir, "compose.yaml")
	if err := os.WriteFile(other, []byte("services: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	anonymous := filepath.Join(dir, "anonymous.yaml")
	if err := os.WriteFile(anonymous, []byte("format: bookxmp/v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := &session{
		cfg:    config.Default(),
		logger: logging.NewConsoleLoggerTo(io.Discard, true),
		styles: tui.NewStyles(false),
		out:    io.Discard,
		fs:     filesystem.NewOSFileSystem(),
	}

	record, ok, err := loadRecord(s, file)
	if err != nil || !ok {
		t.Fatalf("loadRecord(%s) = %v, %v", file, ok, err)
	}
	if record.ID.String() != parisID || record.Title != "An American In Paris" {
		t.Errorf("record = %+v", record)
	}

	for _, path := range []string{other, anonymous} {
		if _, ok, err := loadRecord(s, path); err != nil || ok {
			t.Errorf("loadRecord(%s) = %v, %v; want skipped", path, ok, err)
		}
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	if !strings.HasPrefix(out, "bookxmp ") {
		t.Errorf("unexpected version output: %q", out)
	}
}
