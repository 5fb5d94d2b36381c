package guestbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggle(t *testing.T) {
	s := &Selection{}

	s.Toggle(Champagne)
	s.Toggle(Beer)
	assert.Equal(t, []Drink{Champagne, Beer}, s.Active())

	// third pick drops the most recently added of the previous two
	s.Toggle(Water)
	assert.Equal(t, []Drink{Champagne, Water}, s.Active())
	assert.False(t, s.IsActive(Beer))

	s.Toggle(Champagne)
	assert.Equal(t, []Drink{Water}, s.Active())

	s.Toggle(Water)
	assert.Empty(t, s.Active())
}

func TestSelectionNeverExceedsCap(t *testing.T) {
	s := NewSelection(Drinks()...)
	assert.Len(t, s.Active(), MaxChoices)
	assert.Equal(t, []Drink{Champagne, Water}, s.Active())
}

func TestParseDrink(t *testing.T) {
	d, err := ParseDrink(" Vin-Rouge ")
	assert.NoError(t, err)
	assert.Equal(t, RedWine, d)
	assert.Equal(t, "Vin rouge", d.Label())

	_, err = ParseDrink("")
	assert.ErrorIs(t, err, ErrUnknownDrink)
	assert.False(t, Drink("whisky").Valid())
	assert.Equal(t, "whisky", Drink("whisky").Label())
}
