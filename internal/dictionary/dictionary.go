// =============================================================================
// AGS Data Validator - Dictionary Loader
// =============================================================================
//
// The standard AGS4 dictionaries ship inside the binary as AGS files of their
// own: a TRAN group stating the edition and a DICT group listing every GROUP
// and HEADING. They are read with the same decoder as subject files and then
// turned into a schema Container, one Group per dictionary GROUP with a Column
// per HEADING carrying its Type, Unit and Status.
//
// Loaded dictionaries are immutable and cached per version for the life of
// the process.
//
// =============================================================================

package dictionary

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ginjaninja78/AGS-data-validator/internal/decoder"
	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

//go:embed data/*.ags
var resources embed.FS

// ErrUnknownVersion is returned for a dictionary version that is not embedded.
var ErrUnknownVersion = errors.New("unknown dictionary version")

// =============================================================================
// VERSIONS
// =============================================================================

// Version identifies an AGS4 dictionary edition.
type Version string

const (
	V4_0_3 Version = "4.0.3"
	V4_0_4 Version = "4.0.4"
	V4_1   Version = "4.1"
)

// Default is the edition used when none is configured.
const Default = V4_1

// Versions lists the embedded editions, oldest first.
var Versions = []Version{V4_0_3, V4_0_4, V4_1}

// ParseVersion accepts "4.1", "v4.1" or "4_1" style identifiers.
func ParseVersion(s string) (Version, error) {
	norm := strings.ReplaceAll(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v"), "_", ".")
	for _, v := range Versions {
		if string(v) == norm {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}

func (v Version) String() string {
	return string(v)
}

// resource returns the embedded file name for v.
func (v Version) resource() string {
	return "data/standard_dict_v" + strings.ReplaceAll(string(v), ".", "_") + ".ags"
}

// =============================================================================
// DICTIONARY
// =============================================================================

// Dictionary is one loaded standard edition.
type Dictionary struct {
	Version Version
	groups  *model.Container
}

// Groups returns the dictionary GROUPs in dictionary order.
func (d *Dictionary) Groups() *model.Container {
	return d.groups
}

// Group returns the reference definition of a GROUP, or nil.
func (d *Dictionary) Group(name string) *model.Group {
	if d == nil {
		return nil
	}
	return d.groups.Group(name)
}

var (
	cacheMu sync.Mutex
	cache   = make(map[Version]*Dictionary)
)

// Load returns the standard dictionary for v.
//
// PARAMETERS:
//   - v: The dictionary edition.
//
// RETURNS:
//   - The loaded Dictionary, shared between callers and never modified.
//   - ErrUnknownVersion when v is not embedded, or an error describing a
//     damaged resource.
func Load(v Version) (*Dictionary, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if d, ok := cache[v]; ok {
		return d, nil
	}

	d, err := load(v)
	if err != nil {
		return nil, err
	}
	cache[v] = d
	return d, nil
}

func load(v Version) (*Dictionary, error) {
	raw, err := resources.ReadFile(v.resource())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, string(v))
	}

	errs := types.NewCollector()
	c, err := decoder.NewDecoder(bytes.NewReader(raw), "", errs).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", v, err)
	}
	if errs.Len() > 0 {
		return nil, fmt.Errorf("dictionary %s is malformed: %v", v, errs.Sorted()[0])
	}

	edition := ""
	if tran := c.Group("TRAN"); tran != nil && tran.RowCount() > 0 {
		edition = tran.Row(0).Get("TRAN_AGS")
	}
	if edition != string(v) {
		return nil, fmt.Errorf("dictionary resource for %s declares edition %q", v, edition)
	}

	dict := c.Group("DICT")
	if dict == nil {
		return nil, fmt.Errorf("dictionary %s has no DICT group", v)
	}
	return &Dictionary{Version: v, groups: FromDict(dict)}, nil
}

// =============================================================================
// DICT CONVERSION
// =============================================================================

// DICT row kinds.
const (
	dictTypeGroup   = "GROUP"
	dictTypeHeading = "HEADING"
)

// FromDict converts the rows of a DICT group into a schema Container. GROUP
// rows carry the parent and description; HEADING rows become Columns in row
// order. A HEADING row for a GROUP without its own GROUP row still defines the
// GROUP. Repeated HEADING rows keep the first definition. A nil group yields
// an empty Container.
func FromDict(dict *model.Group) *model.Container {
	out := model.NewContainer("")
	if dict == nil {
		return out
	}

	ensure := func(name string) *model.Group {
		if g := out.Group(name); g != nil {
			return g
		}
		g := model.NewGroup(name)
		out.Add(g)
		return g
	}

	for _, row := range dict.Rows() {
		name := row.Get("DICT_GRP")
		if name == "" {
			continue
		}

		switch strings.ToUpper(row.Get("DICT_TYPE")) {
		case dictTypeGroup:
			g := ensure(name)
			if g.ParentGroup == "" {
				g.ParentGroup = row.Get("DICT_PGRP")
			}
			if g.Description == "" {
				g.Description = row.Get("DICT_DESC")
			}
		case dictTypeHeading:
			heading := row.Get("DICT_HDNG")
			g := ensure(name)
			if heading == "" || g.HasColumn(heading) {
				continue
			}
			col := g.AddColumn(heading)
			col.Type = row.Get("DICT_DTYP")
			col.Unit = row.Get("DICT_UNIT")
			col.Status = model.ParseStatus(row.Get("DICT_STAT"))
			col.Description = row.Get("DICT_DESC")
		}
	}
	return out
}
