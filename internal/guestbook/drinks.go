package guestbook

import (
	"fmt"
	"strings"
)

// Drink is one entry of the fixed drink list offered on the invitation.
type Drink string

const (
	Champagne Drink = "champagne"
	RedWine   Drink = "vin-rouge"
	WhiteWine Drink = "vin-blanc"
	Beer      Drink = "biere"
	Cocktail  Drink = "cocktail"
	Juice     Drink = "jus"
	Soda      Drink = "soda"
	Water     Drink = "eau"
)

// MaxChoices is how many drinks a guest may keep selected.
const MaxChoices = 2

var drinkLabels = map[Drink]string{
	Champagne: "Champagne",
	RedWine:   "Vin rouge",
	WhiteWine: "Vin blanc",
	Beer:      "Bière",
	Cocktail:  "Cocktail",
	Juice:     "Jus de fruits",
	Soda:      "Soda",
	Water:     "Eau",
}

// Drinks returns the drink list in display order.
func Drinks() []Drink {
	return []Drink{Champagne, RedWine, WhiteWine, Beer, Cocktail, Juice, Soda, Water}
}

func ParseDrink(s string) (Drink, error) {
	d := Drink(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := drinkLabels[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDrink, s)
	}
	return d, nil
}

func (d Drink) Valid() bool {
	_, ok := drinkLabels[d]
	return ok
}

func (d Drink) Label() string {
	if l, ok := drinkLabels[d]; ok {
		return l
	}
	return string(d)
}

// Selection tracks the active drinks in the order they were activated.
// The zero value is an empty selection.
type Selection struct {
	active []Drink
}

func NewSelection(ds ...Drink) *Selection {
	s := &Selection{}
	for _, d := range ds {
		s.Select(d)
	}
	return s
}

// Toggle deactivates d if it is active and activates it otherwise.
func (s *Selection) Toggle(d Drink) {
	if i := s.index(d); i >= 0 {
		s.active = append(s.active[:i], s.active[i+1:]...)
		return
	}
	s.Select(d)
}

// Select activates d. Activating a third drink drops the most recently
// added of the two already active.
func (s *Selection) Select(d Drink) {
	if s.index(d) >= 0 {
		return
	}
	if len(s.active) >= MaxChoices {
		s.active = s.active[:MaxChoices-1]
	}
	s.active = append(s.active, d)
}

func (s *Selection) IsActive(d Drink) bool { return s.index(d) >= 0 }

func (s *Selection) Active() []Drink {
	return append([]Drink(nil), s.active...)
}

func (s *Selection) index(d Drink) int {
	for i, a := range s.active {
		if a == d {
			return i
		}
	}
	return -1
}
