package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/manifoldco/promptui"

	"github.com/eringen/devblog"
)

// runWizard asks for the settings most sites change and writes the answers
// into cfg. Everything else keeps its default.
func runWizard(cfg *devblog.SiteConfig) error {
	fmt.Println("Let's configure your devblog site.")
	fmt.Println()

	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.Name,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return fmt.Errorf("site name: %w", err)
	}

	urlPrompt := promptui.Prompt{
		Label:    "Public URL",
		Default:  cfg.URL,
		Validate: validateSiteURL,
	}
	siteURL, err := urlPrompt.Run()
	if err != nil {
		return fmt.Errorf("site url: %w", err)
	}

	postsPrompt := promptui.Prompt{
		Label:   "Posts directory",
		Default: cfg.PostsDir,
	}
	postsDir, err := postsPrompt.Run()
	if err != nil {
		return fmt.Errorf("posts dir: %w", err)
	}

	sourcePrompt := promptui.Select{
		Label: "Serve articles from",
		Items: []string{
			"dir: the posts directory as it is on disk",
			"store: the SQLite store (fill it with devblog import)",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return fmt.Errorf("source selection: %w", err)
	}
	sources := []string{devblog.SourceDir, devblog.SourceStore}

	passwordPrompt := promptui.Prompt{
		Label: "Admin password (blank disables /admin)",
		Mask:  '*',
	}
	password, err := passwordPrompt.Run()
	if err != nil {
		return fmt.Errorf("admin password: %w", err)
	}

	cfg.Name = name
	cfg.URL = siteURL
	cfg.PostsDir = postsDir
	cfg.Source = sources[sourceIdx]
	cfg.AdminPassword = password
	return nil
}

func validateSiteURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("enter an absolute URL such as https://blog.example.com")
	}
	return nil
}
