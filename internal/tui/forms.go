package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetrack/internal/constants"
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func newTaskForm(f *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Value(&f.Title).
				Validate(required("title")),
			huh.NewSelect[constants.TaskCategory]().
				Title("Category").
				Options(
					huh.NewOption("Physical", constants.TaskPhysical),
					huh.NewOption("Mental", constants.TaskMental),
					huh.NewOption("Work", constants.TaskWork),
					huh.NewOption("Personal", constants.TaskPersonal),
				).
				Value(&f.Category),
		),
	).WithShowHelp(true)
}

func newNoteForm(f *NoteFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Note").
				Value(&f.Content).
				Validate(required("content")),
			huh.NewSelect[constants.LinkedSystem]().
				Title("Linked system").
				Options(
					huh.NewOption("None", constants.LinkedSystem("")),
					huh.NewOption("General", constants.SystemGeneral),
					huh.NewOption("Meditation", constants.SystemMeditation),
					huh.NewOption("Reading", constants.SystemReading),
					huh.NewOption("Workout", constants.SystemWorkout),
				).
				Value(&f.LinkedSystem),
			huh.NewSelect[int]().
				Title("Mood").
				Options(
					huh.NewOption("Skip", 0),
					huh.NewOption("1", 1),
					huh.NewOption("2", 2),
					huh.NewOption("3", 3),
					huh.NewOption("4", 4),
					huh.NewOption("5", 5),
				).
				Value(&f.Mood),
		),
	).WithShowHelp(true)
}
