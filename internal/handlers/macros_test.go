package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dayline/internal/models"
)

func TestMacroTargetsResponseDerivesCalories(t *testing.T) {
	resp := toMacroTargetsResponse(models.MacroTarget{
		Protein: 180, Carbs: 150, Fats: 50,
	})
	assert.Equal(t, 180.0, resp.Protein)
	assert.Equal(t, 150.0, resp.Carbs)
	assert.Equal(t, 50.0, resp.Fats)
	assert.Equal(t, 1770, resp.Calories)
}
