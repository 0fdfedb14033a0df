package model

import (
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/DS-LIT/hrba-forms/internal/model/catalogdata"
)

type EntryKind string

const (
	EntryKindForm     EntryKind = "form"
	EntryKindDocument EntryKind = "document"
)

type DashboardEntry struct {
	Slug        string    `toml:"slug" json:"slug"`
	Kind        EntryKind `toml:"kind" json:"kind"`
	Title       string    `toml:"title" json:"title"`
	Route       string    `toml:"route" json:"route"`
	Description string    `toml:"description" json:"description,omitempty"`
	Document    string    `toml:"document" json:"-"`
	Download    string    `toml:"download" json:"download,omitempty"`
}

type DashboardSection struct {
	Title string           `toml:"title" json:"title"`
	Items []DashboardEntry `toml:"items" json:"items"`
}

// MailTemplate holds the subject, body and attachment name of one kind of outgoing email.
// Placeholders are written as {key}.
type MailTemplate struct {
	Subject    string `toml:"subject"`
	Body       string `toml:"body"`
	Attachment string `toml:"attachment"`
}

func (t MailTemplate) fill(s string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func (t MailTemplate) BodyWith(values map[string]string) string {
	return t.fill(t.Body, values)
}

func (t MailTemplate) AttachmentWith(values map[string]string) string {
	sanitized := lo.MapValues(values, func(v string, _ string) string {
		return strings.NewReplacer("/", "-", "\\", "-", "\r", "", "\n", "").Replace(v)
	})
	return t.fill(t.Attachment, sanitized)
}

type Catalog struct {
	Colours     []string                `toml:"colours"`
	Allegations []string                `toml:"allegations"`
	Sections    []DashboardSection      `toml:"sections"`
	Mail        map[string]MailTemplate `toml:"mail"`
}

const (
	MailTribunal      = "tribunal"
	MailReimbursement = "reimbursement"
	MailForward       = "forward"
)

var (
	catalog     *Catalog
	catalogOnce sync.Once
)

// ParseCatalog decodes a catalog document. Unknown keys are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DefaultCatalog is the embedded catalog, parsed on first use.
func DefaultCatalog() *Catalog {
	catalogOnce.Do(func() {
		c, err := ParseCatalog(catalogdata.TOML)
		if err != nil {
			panic("model: embedded catalog is invalid: " + err.Error())
		}
		catalog = c
	})
	return catalog
}

func (c *Catalog) IsColour(v string) bool {
	return lo.Contains(c.Colours, strings.ToLower(v))
}

func (c *Catalog) IsAllegation(v string) bool {
	return lo.Contains(c.Allegations, v)
}

// SelectedAllegations returns the catalog allegations present in selected, in catalog order.
func (c *Catalog) SelectedAllegations(selected []string) []string {
	return lo.Filter(c.Allegations, func(a string, _ int) bool {
		return lo.Contains(selected, a)
	})
}

func (c *Catalog) Entry(slug string) (DashboardEntry, bool) {
	for _, s := range c.Sections {
		if e, ok := lo.Find(s.Items, func(e DashboardEntry) bool { return e.Slug == slug }); ok {
			return e, true
		}
	}
	return DashboardEntry{}, false
}

func (c *Catalog) MailTemplate(name string) MailTemplate {
	return c.Mail[name]
}
