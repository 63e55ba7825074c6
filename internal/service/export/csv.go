// Package export serializes filtered record sets into spreadsheet-ready CSV
// documents. The engine boundary is the document itself; writing files or
// triggering downloads belongs to the caller.
package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/authlens/change-analytics/internal/domain/change"
)

// utf8BOM makes spreadsheet tools decode non-ASCII names correctly
const utf8BOM = "\xEF\xBB\xBF"

// timestampLayout matches the dashboard's date-time rendering
const timestampLayout = "Jan 2, 2006 15:04:05"

// Document is a serialized CSV payload with its suggested filename
type Document struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

// MIMEType is the content type a download collaborator should use
func (Document) MIMEType() string {
	return "text/csv;charset=utf-8"
}

// Options configures a change-event export
type Options struct {
	IncludeAdded   bool
	IncludeRemoved bool

	// Optional; inclusive on both ends, inverted means no rows
	DateRange *change.DateRange

	// Now anchors filename generation; the zero value means time.Now().
	// Injected so identical options yield identical filenames in tests.
	Now time.Time
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now().UTC()
	}
	return o.Now.UTC()
}

// ChangeEventsCSV serializes the selected events, most recent first. The
// subject kind only parameterizes column labels and the filename prefix; the
// permission and entity exports share this one implementation.
func ChangeEventsCSV(events []change.Event, auths []change.Authorization, kind change.SubjectKind, opts Options) Document {
	idx := change.NewAuthorizationIndex(auths)

	rows := make([]change.Event, 0, len(events))
	for _, e := range events {
		if !actionIncluded(e.Action, opts) {
			continue
		}
		if opts.DateRange != nil && (!opts.DateRange.IsValid() || !opts.DateRange.Contains(e.OccurredAt)) {
			continue
		}
		rows = append(rows, e)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].OccurredAt.After(rows[j].OccurredAt)
	})

	label := kind.Label()
	var b strings.Builder
	b.WriteString(utf8BOM)
	writeRecord(&b, []field{
		{value: "Date & Time"},
		{value: "Action"},
		{value: label + " Name"},
		{value: label + " ID"},
		{value: "Authorization Name"},
		{value: "Workspace"},
		{value: "Data Source"},
		{value: "Used in Datastreams"},
		{value: "Datastream Names"},
	})

	for _, e := range rows {
		name := change.UnknownAuthorizationLabel
		if auth, ok := idx.Lookup(e.AuthorizationID); ok {
			name = auth.Name
		}

		writeRecord(&b, []field{
			{value: e.OccurredAt.Format(timestampLayout), quote: true},
			{value: string(e.Action)},
			{value: e.SubjectName, quote: true},
			{value: e.ID},
			{value: name, quote: true},
			{value: e.Workspace},
			{value: e.DataSource},
			{value: strconv.Itoa(e.RelatedStreamCount())},
			{value: strings.Join(e.RelatedStreamNames, ", "), quote: true},
		})
	}

	return Document{
		Text:     b.String(),
		Filename: changeEventsFilename(kind, opts),
	}
}

// AuthorizationsCSV serializes the authorization list view
func AuthorizationsCSV(auths []change.Authorization, now time.Time) Document {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString(utf8BOM)
	writeRecord(&b, []field{
		{value: "Name"},
		{value: "Type"},
		{value: "Workspace"},
		{value: "Created"},
		{value: "Last Used"},
		{value: "Entities Count"},
		{value: "Datastreams Count"},
		{value: "Status"},
	})

	for _, a := range auths {
		lastUsed := "Never"
		if a.LastUsedAt != nil {
			lastUsed = a.LastUsedAt.Format(timestampLayout)
		}

		writeRecord(&b, []field{
			{value: a.Name, quote: true},
			{value: a.DataSourceType},
			{value: a.Workspace},
			{value: a.CreatedAt.Format(timestampLayout)},
			{value: lastUsed},
			{value: strconv.Itoa(a.EntityCount)},
			{value: strconv.Itoa(a.DatastreamCount)},
			{value: string(a.Status)},
		})
	}

	return Document{
		Text:     b.String(),
		Filename: fmt.Sprintf("authorizations_%s.csv", now.UTC().Format("2006-01-02")),
	}
}

func actionIncluded(a change.Action, opts Options) bool {
	if opts.IncludeAdded && a == change.ActionAdded {
		return true
	}
	if opts.IncludeRemoved && a == change.ActionRemoved {
		return true
	}
	return false
}

// field pairs a value with a forced-quote flag for free-text columns
type field struct {
	value string
	quote bool
}

// writeRecord emits one CSV record. Free-text fields are always quoted;
// other fields only when they contain a delimiter, quote or line break.
// Embedded quotes are doubled per RFC 4180.
func writeRecord(b *strings.Builder, fields []field) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if f.quote || strings.ContainsAny(f.value, ",\"\n\r") {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f.value, `"`, `""`))
			b.WriteByte('"')
		} else {
			b.WriteString(f.value)
		}
	}
	b.WriteByte('\n')
}

// changeEventsFilename is deterministic: the same options and date produce
// the same name.
func changeEventsFilename(kind change.SubjectKind, opts Options) string {
	var suffix string
	if opts.IncludeAdded {
		suffix += "_added"
	}
	if opts.IncludeRemoved {
		suffix += "_removed"
	}

	prefix := strings.ToLower(kind.Label())
	if opts.DateRange != nil {
		return fmt.Sprintf("%s_changes_%s_to_%s%s.csv",
			prefix,
			opts.DateRange.From.UTC().Format("2006-01-02"),
			opts.DateRange.To.UTC().Format("2006-01-02"),
			suffix)
	}
	return fmt.Sprintf("%s_changes_%s%s.csv", prefix, opts.now().Format("2006-01-02"), suffix)
}
