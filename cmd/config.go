package cmd

// Config carries the environment-provided settings: the HTTP listen port,
// the database connection, and the path of the dispatch policy file.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	PolicyPath string
}
