package query

// Source identifies one of the two record tables the search unions
// each source owns its table, the two columns it matches on and how it projects onto a record
type Source int

const (
	// SourceA is the avatar table with separate description and author columns
	SourceA Source = iota + 1
	// SourceB is the avatarnworld table which only carries authorname
	SourceB
)

// Sources lists every source in union order
func Sources() []Source { return []Source{SourceA, SourceB} }

type sourceDef struct {
	table   string
	match   [2]string
	project string
	label   string
}

var defs = map[Source]sourceDef{
	SourceA: {
		table:   "avatar",
		match:   [2]string{"name", "author"},
		project: "name, description, author, guid",
		label:   "Avatar库1",
	},
	SourceB: {
		table:   "avatarnworld",
		match:   [2]string{"name", "authorname"},
		project: "name, authorname AS description, authorname AS author, guid",
		label:   "Avatar库2",
	},
}

// Valid reports whether s is a known source
func (s Source) Valid() bool { _, ok := defs[s]; return ok }

// Table is the backing table name
func (s Source) Table() string { return defs[s].table }

// MatchColumns are the two columns the contains filter runs against
func (s Source) MatchColumns() [2]string { return defs[s].match }

// Label is the display tag shown on result cards
func (s Source) Label() string { return defs[s].label }

// String returns a short stable name for logs and json
func (s Source) String() string {
	switch s {
	case SourceA:
		return "a"
	case SourceB:
		return "b"
	}
	return "unknown"
}

// SourceFromLabel maps a projected label back to its source, zero when unknown
func SourceFromLabel(label string) Source {
	for s, d := range defs {
		if d.label == label {
			return s
		}
	}
	return 0
}
