package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"filmpicker/internal/config"
	"filmpicker/internal/ui/theme"
)

// setupAnswers holds the values collected by the first-run form.
type setupAnswers struct {
	Endpoint  string
	Theme     string
	CachePath string
}

func currentSetupAnswers() setupAnswers {
	return setupAnswers{
		Endpoint:  config.GetString(config.KeyEndpoint),
		Theme:     config.GetString(config.KeyTheme),
		CachePath: config.GetString(config.KeyCachePath),
	}
}

// promptSetup asks for the endpoint, theme and cache file, starting from
// the current configuration.
func promptSetup(answers setupAnswers) (setupAnswers, error) {
	themes := make([]huh.Option[string], 0, len(theme.Available()))
	for _, name := range theme.Available() {
		themes = append(themes, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GraphQL endpoint").
				Description("URL that answers the films and commonPersons queries.").
				Value(&answers.Endpoint).
				Validate(validateEndpoint),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&answers.Theme),
			huh.NewInput().
				Title("Response cache file").
				Description("Leave empty to disable caching.").
				Value(&answers.CachePath),
		),
	)
	if err := form.Run(); err != nil {
		return answers, fmt.Errorf("setup form: %w", err)
	}
	return answers, nil
}

func validateEndpoint(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint needs a host")
	}
	return nil
}

// saveSetup validates and persists the answers to the nearest config file.
func saveSetup(answers setupAnswers) error {
	if err := validateEndpoint(answers.Endpoint); err != nil {
		return err
	}
	values := map[string]any{
		config.KeyEndpoint:  strings.TrimSpace(answers.Endpoint),
		config.KeyCachePath: strings.TrimSpace(answers.CachePath),
	}
	if name := strings.TrimSpace(answers.Theme); name != "" {
		if !theme.SetTheme(name) {
			return fmt.Errorf("unknown theme %q", name)
		}
		values[config.KeyTheme] = name
	}
	return config.SaveSettings(values)
}

func runSetup() error {
	answers, err := promptSetup(currentSetupAnswers())
	if err != nil {
		return err
	}
	return saveSetup(answers)
}
