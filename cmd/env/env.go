package env

const (
	// Prefix is the prefix of every fcbrates environment variable
	Prefix = "FCBRATES_"

	// DBURLSuffix names the Postgres connection string variable
	DBURLSuffix = "DB_URL"
)
