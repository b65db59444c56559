package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gorecipes/internal/domain"
)

const sheet = "Sheet1"

var header = []string{"id", "title", "category", "time", "servings", "description", "image_url"}

func row(c domain.RecipeCard) []string {
	servings := ""
	if c.Servings > 0 {
		servings = strconv.Itoa(c.Servings)
	}
	return []string{c.ID, c.Title, c.Category, c.Time, servings, c.Description, c.ImageURL}
}

// Write grava os cards em path; o formato vem da extensão (.csv ou .xlsx).
func Write(path string, cards []domain.RecipeCard) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(path, cards)
	case ".xlsx":
		return WriteXLSX(path, cards)
	default:
		return fmt.Errorf("formato não suportado %q (use .csv ou .xlsx)", filepath.Ext(path))
	}
}

// WriteCSV grava uma linha de cabeçalho seguida de uma linha por receita.
func WriteCSV(path string, cards []domain.RecipeCard) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, c := range cards {
		if err := w.Write(row(c)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteXLSX grava a mesma tabela em uma planilha.
func WriteXLSX(path string, cards []domain.RecipeCard) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(header)); err != nil {
		return err
	}
	for i, c := range cards {
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		if err := sw.SetRow(cell, toCells(row(c))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
