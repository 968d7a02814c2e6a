package tui

import (
	"github.com/charmbracelet/huh"
)

func CreateCacheForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("directory").
				Title("Checkout Root").
				Description("Directory under which repositories are checked out").
				Value(&values.CacheDirectory).
				Placeholder("~/.docprep/checkouts").
				Validate(ValidateRequired),

			huh.NewConfirm().
				Key("index").
				Title("Checkout Index").
				Description("Record checkout metadata for cache list and lookup").
				Value(&values.CacheIndex),

			huh.NewInput().
				Key("index_directory").
				Title("Index Directory").
				Description("Where the checkout index is stored").
				Value(&values.IndexDirectory).
				Placeholder("~/.docprep/index"),
		),
	)
}

func CreateGitForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("timeout").
				Title("Clone Timeout").
				Description("Maximum time for a single checkout (e.g., 2m, 5m)").
				Value(&values.GitTimeout).
				Placeholder("5m").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("depth").
				Title("Clone Depth").
				Description("History depth to fetch, 0 for full history").
				Value(&values.GitDepth).
				Placeholder("1").
				Validate(ValidateIntRange(0, 1000)),
		),
	)
}

func CreateStorageForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("api_origin").
				Title("API Origin").
				Description("Base URL of the TechDocs static docs endpoint").
				Value(&values.APIOrigin).
				Placeholder("http://localhost:7000/api/techdocs/static/docs").
				Validate(ValidateAbsoluteURL),

			huh.NewInput().
				Key("timeout").
				Title("Request Timeout").
				Description("HTTP request timeout (e.g., 30s, 1m)").
				Value(&values.StorageTimeout).
				Placeholder("30s").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("max_retries").
				Title("Max Retries").
				Description("Retries for transient failures, 0 to disable").
				Value(&values.StorageMaxRetries).
				Placeholder("3").
				Validate(ValidateIntRange(0, 10)),

			huh.NewInput().
				Key("cache_ttl").
				Title("Page Cache TTL").
				Description("How long fetched pages stay cached (e.g., 1h)").
				Value(&values.StorageCacheTTL).
				Placeholder("1h").
				Validate(ValidateDuration),
		),
	)
}

func CreateConcurrencyForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("workers").
				Title("Workers").
				Description("Entities prepared in parallel (1-64)").
				Value(&values.Workers).
				Placeholder("4").
				Validate(ValidateIntRange(1, 64)),
		),
	)
}

func CreatePrepareForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("require_existing").
				Title("Require Existing Directory").
				Description("Fail when the prepared docs directory does not exist").
				Value(&values.RequireExisting),
		),
	)
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Trace", "trace"),
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat),
		),
	)
}

// GetFormForCategory returns the form editing the given category, or nil
func GetFormForCategory(category string, values *ConfigValues) *huh.Form {
	switch category {
	case "cache":
		return CreateCacheForm(values)
	case "git":
		return CreateGitForm(values)
	case "storage":
		return CreateStorageForm(values)
	case "concurrency":
		return CreateConcurrencyForm(values)
	case "prepare":
		return CreatePrepareForm(values)
	case "logging":
		return CreateLoggingForm(values)
	default:
		return nil
	}
}
