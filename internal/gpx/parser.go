// Package gpx reads Groundspeak GPX exports ("My Finds" pocket queries) into
// geocache records.
//
// The reader is a single forward pass over the XML token stream. Each element
// the parser cares about has its own state function; a state is entered right
// after its start element was read and returns once its own end element was
// read, so control always goes back to the enclosing state:
//
//	document    → gpx root, hands every wpt to waypoint
//	waypoint    → wpt: lat/lon attributes, scalar children, cache section
//	cache       → groundspeak:cache: archived/available attributes, same
//	              children as waypoint
//	logs        → groundspeak:logs, hands every groundspeak:log to log
//	log         → groundspeak:log: id attribute, date/type/text children
//	owner       → groundspeak:owner: id attribute and display name
//	attributes  → groundspeak:attributes: one Attribute per child
//
// Elements no state knows about are skipped with their whole subtree.
package gpx

import (
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	// Embedded zone database, the Pacific zone must not depend on the host
	_ "time/tzdata"

	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
	"github.com/olegiv/gclogs-analyzer-go/internal/geocache"
	"github.com/olegiv/gclogs-analyzer-go/internal/groundspeak"
)

const opParse = "gpx.Parse"

// Element names as they appear in Groundspeak exports.
const (
	elemGPX      = "gpx"
	elemWaypoint = "wpt"
	elemTime     = "time"
	elemCode     = "name"
	elemURL      = "url"

	elemCache       = "groundspeak:cache"
	elemName        = "groundspeak:name"
	elemPlacedBy    = "groundspeak:placed_by"
	elemOwner       = "groundspeak:owner"
	elemType        = "groundspeak:type"
	elemContainer   = "groundspeak:container"
	elemAttributes  = "groundspeak:attributes"
	elemAttribute   = "groundspeak:attribute"
	elemDifficulty  = "groundspeak:difficulty"
	elemTerrain     = "groundspeak:terrain"
	elemCountry     = "groundspeak:country"
	elemState       = "groundspeak:state"
	elemDescription = "groundspeak:long_description"
	elemLogs        = "groundspeak:logs"
	elemLog         = "groundspeak:log"
	elemLogDate     = "groundspeak:date"
	elemLogType     = "groundspeak:type"
	elemLogText     = "groundspeak:text"
)

// PacificTime is the zone all Groundspeak timestamps are given in.
var PacificTime = mustLoadLocation("America/Los_Angeles")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("gpx: cannot load time zone " + name + ": " + err.Error())
	}
	return loc
}

// Layouts for timestamps without a zone; they are read as Pacific wall time.
var localTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse reads a whole GPX document and returns one record per waypoint in
// document order, with found order already assigned.
//
// Malformed XML, unbalanced tags or a missing gpx root fail the parse with
// an ErrStructural error and no records. Missing or unreadable numbers and
// dates on a record fall back to zero and geocache.EarliestDate.
func Parse(r io.Reader) ([]*geocache.Record, error) {
	p := &parser{
		tok: newTokenizer(r),
		loc: PacificTime,
	}

	if err := p.document(); err != nil {
		return nil, err
	}

	geocache.AssignFoundOrder(p.records)
	return p.records, nil
}

type parser struct {
	tok     *tokenizer
	loc     *time.Location
	records []*geocache.Record
}

// foundLog collects one groundspeak:log entry before the type filter runs.
type foundLog struct {
	id      int64
	date    time.Time
	text    string
	logType string
}

// document runs from the first token to the end of input.
func (p *parser) document() error {
	sawRoot := false

	for {
		tok, err := p.tok.next()
		if errors.Is(err, io.EOF) {
			if !sawRoot {
				return internalerrors.Structural(opParse, nil, "no %s root element", elemGPX)
			}
			return nil
		}
		if err != nil {
			return err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		name := qualified(start.Name)
		if !sawRoot {
			if name != elemGPX {
				return internalerrors.Structural(opParse, nil, "root element is %q, want %q", name, elemGPX)
			}
			sawRoot = true
			continue
		}

		if name == elemWaypoint {
			rec, err := p.waypoint(start)
			if err != nil {
				return err
			}
			p.records = append(p.records, rec)
		}
	}
}

// waypoint is entered after <wpt> and returns after </wpt>.
func (p *parser) waypoint(start xml.StartElement) (*geocache.Record, error) {
	rec := &geocache.Record{
		Placed:    geocache.EarliestDate,
		FoundDate: geocache.EarliestDate,
	}
	rec.Location.Lat = parseFloat(attr(start, "lat"))
	rec.Location.Lon = parseFloat(attr(start, "lon"))

	err := p.children(func(child xml.StartElement) error {
		return p.field(child, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// field handles one child of wpt or groundspeak:cache. It is entered after
// the child's start element; whatever it leaves unread is skipped by children.
func (p *parser) field(child xml.StartElement, rec *geocache.Record) error {
	var err error

	switch qualified(child.Name) {
	case elemCache:
		return p.cache(child, rec)
	case elemLogs:
		return p.logs(rec)
	case elemOwner:
		return p.owner(child, rec)
	case elemAttributes:
		return p.attributes(rec)

	case elemTime:
		var s string
		s, err = p.scalar()
		rec.Placed = p.parseTime(s)
	case elemCode:
		rec.Code, err = p.scalar()
	case elemURL:
		rec.URL, err = p.scalar()
	case elemName:
		rec.Name, err = p.scalar()
	case elemPlacedBy:
		rec.PlacedBy, err = p.scalar()
	case elemType:
		rec.Type, err = p.scalar()
	case elemContainer:
		rec.Size, err = p.scalar()
	case elemCountry:
		rec.Country, err = p.scalar()
	case elemState:
		rec.State, err = p.scalar()
	case elemDescription:
		rec.Description, err = p.text()
	case elemDifficulty:
		var s string
		s, err = p.scalar()
		rec.Difficulty = parseFloat(s)
	case elemTerrain:
		var s string
		s, err = p.scalar()
		rec.Terrain = parseFloat(s)
	}

	return err
}

// cache is entered after <groundspeak:cache> and returns after its end tag.
func (p *parser) cache(start xml.StartElement, rec *geocache.Record) error {
	rec.CacheID = parseInt(attr(start, "id"))
	rec.Archived = isTrue(attr(start, "archived"))
	rec.Available = isTrue(attr(start, "available"))

	return p.children(func(child xml.StartElement) error {
		return p.field(child, rec)
	})
}

// owner is entered after <groundspeak:owner> and returns after its end tag.
func (p *parser) owner(start xml.StartElement, rec *geocache.Record) error {
	rec.OwnerID = strings.TrimSpace(attr(start, "id"))

	name, err := p.scalar()
	if err != nil {
		return err
	}
	rec.OwnerName = name
	return nil
}

// logs is entered after <groundspeak:logs> and returns after its end tag.
// Every qualifying log overwrites the previous one, so the last wins.
func (p *parser) logs(rec *geocache.Record) error {
	return p.children(func(child xml.StartElement) error {
		if qualified(child.Name) != elemLog {
			return nil
		}

		entry, err := p.log(child)
		if err != nil {
			return err
		}

		if groundspeak.IsFoundLogType(entry.logType) {
			rec.FoundDate = entry.date
			rec.FoundLog = entry.text
			rec.LogType = entry.logType
			rec.LogID = entry.id
		}
		return nil
	})
}

// log is entered after <groundspeak:log> and returns after its end tag.
func (p *parser) log(start xml.StartElement) (foundLog, error) {
	entry := foundLog{
		id:   parseInt(attr(start, "id")),
		date: geocache.EarliestDate,
	}

	err := p.children(func(child xml.StartElement) error {
		var err error
		switch qualified(child.Name) {
		case elemLogDate:
			var s string
			s, err = p.scalar()
			entry.date = p.parseTime(s)
		case elemLogType:
			entry.logType, err = p.scalar()
		case elemLogText:
			entry.text, err = p.text()
		}
		return err
	})

	return entry, err
}

// attributes is entered after <groundspeak:attributes> and returns after its
// end tag. A self-closing section yields no attributes.
func (p *parser) attributes(rec *geocache.Record) error {
	return p.children(func(child xml.StartElement) error {
		if qualified(child.Name) != elemAttribute {
			return nil
		}

		attribute := geocache.Attribute{
			ID: int(parseInt(attr(child, "id"))),
		}
		if inc, ok := lookupAttr(child, "inc"); ok {
			attribute.Inverted = strings.TrimSpace(inc) == "0"
		}

		name, err := p.scalar()
		if err != nil {
			return err
		}
		attribute.Name = name

		rec.Attributes = append(rec.Attributes, attribute)
		return nil
	})
}

// children calls fn for every direct child element of the element whose
// start tag was read last, and returns once that element's end tag was read.
// Anything fn leaves unread of a child is skipped.
func (p *parser) children(fn func(child xml.StartElement) error) error {
	depth := p.tok.depth()

	for {
		tok, err := p.tok.next()
		if err != nil {
			return unexpectedEOF(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
			if err := p.skipTo(depth); err != nil {
				return err
			}
		case xml.EndElement:
			if p.tok.depth() < depth {
				return nil
			}
		}
	}
}

// skipTo reads tokens until the stack is back at depth.
func (p *parser) skipTo(depth int) error {
	for p.tok.depth() > depth {
		if _, err := p.tok.next(); err != nil {
			return unexpectedEOF(err)
		}
	}
	return nil
}

// text returns the character data directly inside the current element and
// returns after its end tag. Nested elements are skipped.
func (p *parser) text() (string, error) {
	depth := p.tok.depth()
	var sb strings.Builder

	for {
		tok, err := p.tok.next()
		if err != nil {
			return "", unexpectedEOF(err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			if p.tok.depth() == depth {
				sb.Write(t)
			}
		case xml.EndElement:
			if p.tok.depth() < depth {
				return sb.String(), nil
			}
		}
	}
}

// scalar is text with surrounding whitespace removed.
func (p *parser) scalar() (string, error) {
	s, err := p.text()
	return strings.TrimSpace(s), err
}

// parseTime converts a timestamp into Pacific time. Zoned stamps are
// converted, unzoned stamps are taken as Pacific wall time.
func (p *parser) parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return geocache.EarliestDate
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(p.loc)
	}

	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, p.loc); err == nil {
			return t
		}
	}

	return geocache.EarliestDate
}

// unexpectedEOF turns io.EOF inside an open element into a structural error.
// The tokenizer already reports that case, this only guards the contract.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return internalerrors.Structural(opParse, err, "unexpected end of document")
	}
	return err
}

func lookupAttr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attr(start xml.StartElement, name string) string {
	v, _ := lookupAttr(start, name)
	return v
}

// parseFloat reads period-decimal numbers regardless of the host locale.
// Unparseable input yields 0.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
