package commands

const (
	DEFAULT_WORKSHEET = "daily_manual_entry"
	DEFAULT_PORT      = 8000

	ENV_SPREADSHEET = "SLEEPDASH_SPREADSHEET"
	ENV_WORKSHEET   = "SLEEPDASH_WORKSHEET"
)
