// Package sources loads projection, ADP, league and market data from files,
// databases and HTTP providers.
package sources

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/draftkit/valuation-api/internal/models"
)

// Projection table names. Each is one CSV export.
const (
	TableQB  = "qb"
	TableFLX = "flx"
	TableRB  = "rb"
	TableWR  = "wr"
	TableTE  = "te"
	TableK   = "k"
	TableDST = "dst"
	TableADP = "adp"
)

// ProjectionTables lists the projection tables in load order.
var ProjectionTables = []string{TableQB, TableFLX, TableRB, TableWR, TableTE, TableK, TableDST}

// ErrUnknownTable is returned for a table name outside ProjectionTables and TableADP.
var ErrUnknownTable = errors.New("unknown table")

// ErrMissingColumn is returned when a required column header is absent.
var ErrMissingColumn = errors.New("missing column")

// tablePositions is the position implied by a single-position table.
var tablePositions = map[string]models.Position{
	TableQB:  models.PositionQB,
	TableRB:  models.PositionRB,
	TableWR:  models.PositionWR,
	TableTE:  models.PositionTE,
	TableK:   models.PositionK,
	TableDST: models.PositionDST,
}

// StatAliases maps a table's export headers to stat codes. A header that
// repeats (passing then rushing YDS) maps its nth occurrence to the nth
// code; occurrences past the list are ignored. Codes that repeat accumulate.
// Headers that already are stat codes pass through unchanged, behind the
// table's code prefix if it has one.
var StatAliases = map[string]map[string][]string{
	TableQB: {
		"YDS":  {"PY", "RY"},
		"TDS":  {"PTD", "RTD"},
		"INTS": {"INT"},
	},
	TableFLX: {
		"YDS": {"RY", "REY"},
		"TDS": {"RTD", "RTD"},
	},
	TableRB: {
		"YDS": {"RY", "REY"},
		"TDS": {"RTD", "RTD"},
	},
	TableWR: {
		"YDS": {"REY", "RY"},
		"TDS": {"RTD", "RTD"},
	},
	TableTE: {
		"YDS": {"REY"},
		"TDS": {"RTD"},
	},
	TableK: {
		"FG":  {"FG0"},
		"XPT": {"PAT"},
	},
	TableDST: {
		"YDS AGN": {"DYA"},
	},
}

// tableCodePrefix namespaces pass-through headers of tables whose stats
// mean something else on offense. A defensive INT becomes DINT.
var tableCodePrefix = map[string]string{
	TableDST: "D",
}

// IsProjectionTable reports whether name is a known projection table.
func IsProjectionTable(name string) bool {
	for _, t := range ProjectionTables {
		if t == name {
			return true
		}
	}
	return false
}

var (
	nameHeaders     = []string{"player", "name", "player name"}
	teamHeaders     = []string{"team", "tm"}
	positionHeaders = []string{"pos", "position"}
	adpHeaders      = []string{"avg", "adp"}
	skipHeaders     = map[string]bool{"FPTS": true, "RANK": true, "BYE": true}
)

// ParseProjections reads one projection CSV export. Rows without a player
// name are dropped; malformed numeric cells score as zero.
func ParseProjections(table string, r io.Reader) (models.ProjectionTable, error) {
	table = strings.ToLower(strings.TrimSpace(table))
	if !IsProjectionTable(table) {
		return models.ProjectionTable{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	header, rows, err := readCSV(r)
	if err != nil {
		return models.ProjectionTable{}, fmt.Errorf("read %s table: %w", table, err)
	}
	nameCol := findColumn(header, nameHeaders)
	if nameCol < 0 {
		return models.ProjectionTable{}, fmt.Errorf("%s table: %w: player name", table, ErrMissingColumn)
	}
	teamCol := findColumn(header, teamHeaders)
	posCol := findColumn(header, positionHeaders)

	codes := statColumns(table, header, nameCol, teamCol, posCol)

	out := models.ProjectionTable{Name: table, Records: make([]models.ProjectionRecord, 0, len(rows))}
	for _, row := range rows {
		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" {
			continue
		}
		rec := models.ProjectionRecord{
			Name:     name,
			Team:     strings.TrimSpace(cell(row, teamCol)),
			Position: rowPosition(table, cell(row, posCol)),
			Stats:    make(models.StatLine, len(codes)),
		}
		for col, code := range codes {
			rec.Stats[code] += models.ParseStat(cell(row, col))
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// ParseADP reads an ADP CSV export: a player column and an AVG or ADP
// column. Unparsable ADP values are skipped.
func ParseADP(r io.Reader) ([]models.ADPEntry, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("read adp table: %w", err)
	}
	nameCol := findColumn(header, nameHeaders)
	if nameCol < 0 {
		return nil, fmt.Errorf("adp table: %w: player name", ErrMissingColumn)
	}
	adpCol := findColumn(header, adpHeaders)
	if adpCol < 0 {
		return nil, fmt.Errorf("adp table: %w: AVG", ErrMissingColumn)
	}

	entries := make([]models.ADPEntry, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(cell(row, nameCol))
		raw := strings.TrimSpace(cell(row, adpCol))
		if name == "" || raw == "" {
			continue
		}
		adp := models.ParseStat(raw)
		if adp <= 0 {
			continue
		}
		entries = append(entries, models.ADPEntry{Name: name, ADP: adp})
	}
	return entries, nil
}

// ParseMarket reads a market value CSV: the first column is the player name
// or pick label, plus Value, optional SFValue and optional Team columns.
func ParseMarket(r io.Reader) ([]models.MarketEntry, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, fmt.Errorf("read market table: %w", err)
	}
	valueCol := findColumn(header, []string{"value", "1qb value", "1qbvalue"})
	if valueCol < 0 {
		return nil, fmt.Errorf("market table: %w: Value", ErrMissingColumn)
	}
	sfCol := findColumn(header, []string{"sfvalue", "sf value", "superflex value"})
	teamCol := findColumn(header, teamHeaders)

	entries := make([]models.MarketEntry, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(cell(row, 0))
		if name == "" {
			continue
		}
		entries = append(entries, models.MarketEntry{
			Name:    name,
			Team:    strings.TrimSpace(cell(row, teamCol)),
			Value:   models.ParseStat(cell(row, valueCol)),
			SFValue: models.ParseStat(cell(row, sfCol)),
		})
	}
	return entries, nil
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, records[1:], nil
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

// statColumns maps column index to stat code for every scoring column.
func statColumns(table string, header []string, skip ...int) map[int]string {
	skipped := make(map[int]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	aliases := StatAliases[table]
	prefix := tableCodePrefix[table]
	seen := make(map[string]int)
	codes := make(map[int]string)
	for i, h := range header {
		if skipped[i] {
			continue
		}
		h = strings.ToUpper(strings.TrimSpace(h))
		if h == "" || skipHeaders[h] {
			continue
		}
		n := seen[h]
		seen[h]++
		if targets, ok := aliases[h]; ok {
			if n < len(targets) {
				codes[i] = targets[n]
			}
			continue
		}
		if n == 0 {
			codes[i] = prefix + h
		}
	}
	return codes
}

func rowPosition(table, raw string) models.Position {
	if pos, ok := tablePositions[table]; ok {
		return pos
	}
	pos, _ := models.ParsePosition(raw)
	return pos
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
