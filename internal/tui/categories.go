package tui

import "fmt"

// Category is one entry of the settings menu
type Category struct {
	ID          string
	Name        string
	Description string
}

var Categories = []Category{
	{ID: "cache", Name: "Checkout Cache", Description: "Checkout root and metadata index"},
	{ID: "git", Name: "Git", Description: "Clone timeout and depth"},
	{ID: "storage", Name: "Docs Storage", Description: "TechDocs API origin, retries and page cache"},
	{ID: "concurrency", Name: "Concurrency", Description: "Parallel preparation workers"},
	{ID: "prepare", Name: "Prepare", Description: "Directory preparation behavior"},
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
}

// GetCategoryByID returns the category with the given ID, or nil
func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}

// Summary renders the current values of a category on one line
func Summary(id string, v *ConfigValues) string {
	switch id {
	case "cache":
		index := "off"
		if v.CacheIndex {
			index = "on"
		}
		return fmt.Sprintf("%s, index %s", v.CacheDirectory, index)
	case "git":
		return fmt.Sprintf("timeout %s, depth %s", orDefault(v.GitTimeout), orDefault(v.GitDepth))
	case "storage":
		return fmt.Sprintf("%s, %s retries", orDefault(v.APIOrigin), orDefault(v.StorageMaxRetries))
	case "concurrency":
		return fmt.Sprintf("%s workers", orDefault(v.Workers))
	case "prepare":
		if v.RequireExisting {
			return "require existing directory"
		}
		return "accept missing directory"
	case "logging":
		return fmt.Sprintf("%s, %s", orDefault(v.LogLevel), orDefault(v.LogFormat))
	}
	return ""
}

func orDefault(s string) string {
	if s == "" {
		return "default"
	}
	return s
}
