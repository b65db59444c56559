package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorecipes/internal/domain"
	"gorecipes/internal/pkg/validation"
)

func validForm() domain.RecipeForm {
	return domain.RecipeForm{
		Title:        "Dal Tadka",
		Description:  "Yellow lentils with a smoky tempering",
		Category:     "Indian",
		CookingTime:  30,
		Servings:     4,
		Difficulty:   "Easy",
		Instructions: "Boil the lentils.\nTemper the spices.",
	}
}

func TestStruct_ValidRecipeForm(t *testing.T) {
	assert.NoError(t, validation.Struct(validForm()))
}

func TestFields_RecipeFormMessages(t *testing.T) {
	form := validForm()
	form.Title = "ab"
	form.CookingTime = 0
	form.ImageURL = "not a url"

	errs := validation.Fields(form)

	require.Len(t, errs, 3)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "Title must be at least 3 characters", errs[0].Msg)
	assert.Equal(t, "cooking_time", errs[1].Field)
	assert.Equal(t, "Please enter a valid URL", errs[2].Msg)
}

func TestStruct_Login(t *testing.T) {
	err := validation.Struct(domain.LoginRequest{Email: "ana@example.com", Password: "12345"})
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters", err.Error())

	assert.NoError(t, validation.Struct(domain.LoginRequest{Email: "ana@example.com", Password: "123456"}))
}

func TestStruct_ProfileBioLimit(t *testing.T) {
	p := domain.ProfileUpdate{Name: "Ana", Email: "ana@example.com", Bio: strings.Repeat("a", 501)}
	err := validation.Struct(p)
	require.Error(t, err)
	assert.Equal(t, "Bio must not exceed 500 characters", err.Error())
}
