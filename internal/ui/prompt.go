package ui

import (
	"github.com/charmbracelet/huh"
)

// Menu choices
const (
	ChoiceCheckIn   = "1"
	ChoiceUsernames = "2"
	ChoiceExit      = "0"
)

// Prompter asks questions on the terminal; it implements services.Prompter.
type Prompter struct{}

func (Prompter) Input(title string) (string, error) {
	var value string
	err := huh.NewInput().Title(title).Value(&value).Run()
	return value, err
}

func (Prompter) Confirm(title string) (bool, error) {
	var value bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value).
		Run()
	return value, err
}

// Menu shows the main menu and returns one of the Choice constants
func (Prompter) Menu() (string, error) {
	choice := ChoiceCheckIn
	err := huh.NewSelect[string]().
		Title("Select an option").
		Options(
			huh.NewOption("1. Perform Daily Check In", ChoiceCheckIn),
			huh.NewOption("2. Set Usernames", ChoiceUsernames),
			huh.NewOption("0. Exit", ChoiceExit),
		).
		Value(&choice).
		Run()
	return choice, err
}
