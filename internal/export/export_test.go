package export_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gorecipes/internal/domain"
	"gorecipes/internal/export"
)

var cards = []domain.RecipeCard{
	{ID: "1", Title: "Italian Pasta", Category: "Italian", Time: "25 min", Servings: 4, Description: "Classic, with basil"},
	{ID: "butter-chicken", Title: "Butter Chicken", Category: "Indian"},
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.csv")
	require.NoError(t, export.Write(path, cards))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "title", records[0][1])
	assert.Equal(t, "Classic, with basil", records[1][5])
	assert.Equal(t, "", records[2][4])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.xlsx")
	require.NoError(t, export.Write(path, cards))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "title", "category", "time", "servings", "description", "image_url"}, rows[0])
	assert.Equal(t, "Butter Chicken", rows[2][1])
}

func TestWrite_UnknownExtension(t *testing.T) {
	err := export.Write(filepath.Join(t.TempDir(), "recipes.pdf"), cards)
	assert.ErrorContains(t, err, ".pdf")
}
