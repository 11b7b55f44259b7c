// Package export renders camp standings as spreadsheets.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	leaderboardSheet = "Leaderboard"
	groupsSheet      = "Groups"
)

type sheetSpec struct {
	Title  string
	Header []string
	Rows   [][]interface{}
}

// CampWorkbook is a camp leaderboard ready to be streamed as .xlsx.
type CampWorkbook struct {
	File *excelize.File
	Name string
}

// NewCampWorkbook builds a two-sheet workbook: every kid ranked by points,
// and per-group totals.
func NewCampWorkbook(camp *models.Camp, kids []models.CampKid) (*CampWorkbook, error) {
	ranked := make([]models.CampKid, len(kids))
	copy(ranked, kids)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Points > ranked[j].Points })

	sheets := []sheetSpec{
		{
			Title:  leaderboardSheet,
			Header: []string{"Rank", "Nickname", "First name", "Last name", "Group", "Points"},
			Rows:   kidRows(ranked),
		},
		{
			Title:  groupsSheet,
			Header: []string{"Group", "Kids", "Total points"},
			Rows:   groupRows(ranked),
		},
	}

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Title); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Title); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}

		if err := f.SetSheetRow(s.Title, "A1", &s.Header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		end, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		_ = f.SetCellStyle(s.Title, "A1", end, bold)
		_ = f.AutoFilter(s.Title, "A1:"+end, nil)

		for r, row := range s.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			row := row
			if err := f.SetSheetRow(s.Title, cell, &row); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+2, err)
			}
		}
		_ = f.SetColWidth(s.Title, "A", "F", 14)
	}

	return &CampWorkbook{
		File: f,
		Name: fmt.Sprintf("%s_leaderboard.xlsx", fileSafe(camp.Name)),
	}, nil
}

// WriteTo streams the workbook.
func (w *CampWorkbook) WriteTo(out io.Writer) (int64, error) {
	return w.File.WriteTo(out)
}

func (w *CampWorkbook) Close() error {
	return w.File.Close()
}

func kidRows(ranked []models.CampKid) [][]interface{} {
	rows := make([][]interface{}, 0, len(ranked))
	for i, k := range ranked {
		rows = append(rows, []interface{}{i + 1, k.Nickname, k.FirstName, k.LastName, k.GroupNumber, k.Points})
	}
	return rows
}

func groupRows(kids []models.CampKid) [][]interface{} {
	counts := map[int]int{}
	totals := map[int]int{}
	for _, k := range kids {
		counts[k.GroupNumber]++
		totals[k.GroupNumber] += k.Points
	}

	groups := make([]int, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Ints(groups)

	rows := make([][]interface{}, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []interface{}{g, counts[g], totals[g]})
	}
	return rows
}

func fileSafe(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "camp"
	}
	return string(out)
}
