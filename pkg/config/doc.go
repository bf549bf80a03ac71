// Package config loads configuration structs from environment variables.
//
// Load parses `env` struct tags with github.com/caarlos0/env/v11 after
// loading dotenv files with github.com/joho/godotenv. A .env file in the
// working directory is picked up automatically; further files can be named
// with WithEnvFiles. WithPrefix namespaces all variables of a struct.
package config
