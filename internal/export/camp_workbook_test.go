package export

import (
	"bytes"
	"testing"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNewCampWorkbook(t *testing.T) {
	camp := &models.Camp{Name: "Summer Camp 2024!"}
	kids := []models.CampKid{
		{Nickname: "Nok", FirstName: "Nok", LastName: "A", GroupNumber: 2, Points: 5},
		{Nickname: "Ton", FirstName: "Ton", LastName: "B", GroupNumber: 1, Points: 20},
		{Nickname: "Fah", FirstName: "Fah", LastName: "C", GroupNumber: 2, Points: -3},
	}

	wb, err := NewCampWorkbook(camp, kids)
	require.NoError(t, err)
	assert.Equal(t, "Summer_Camp_2024_leaderboard.xlsx", wb.Name)

	var buf bytes.Buffer
	_, err = wb.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(leaderboardSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Rank", "Nickname", "First name", "Last name", "Group", "Points"}, rows[0])
	assert.Equal(t, []string{"1", "Ton", "Ton", "B", "1", "20"}, rows[1])
	assert.Equal(t, []string{"3", "Fah", "Fah", "C", "2", "-3"}, rows[3])

	groups, err := f.GetRows(groupsSheet)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"1", "1", "20"}, groups[1])
	assert.Equal(t, []string{"2", "2", "2"}, groups[2])

	// Input order is left untouched.
	assert.Equal(t, "Nok", kids[0].Nickname)
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "camp", fileSafe("!!!"))
	assert.Equal(t, "Big_Camp-1", fileSafe("Big Camp-1"))
}
