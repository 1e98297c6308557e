package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("IPORTAL_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("IPORTAL_DEBUG") == "true"
}

// GetDataFolder is where the portal keeps its CSV tables.
func GetDataFolder() string {
	dataFolder := os.Getenv("IPORTAL_DATA_FOLDER")
	if dataFolder == "" {
		dataFolder = "data"
	}
	return dataFolder
}

func GetUsersPath() string {
	return filepath.Join(GetDataFolder(), "users.csv")
}

func GetIssuesPath() string {
	return filepath.Join(GetDataFolder(), "issues.csv")
}

func GetHelpRequestsPath() string {
	return filepath.Join(GetDataFolder(), "help_requests.csv")
}

// GetUploadFolder is where uploaded offer letters land, one PDF per user.
func GetUploadFolder() string {
	uploadFolder := os.Getenv("IPORTAL_UPLOAD_FOLDER")
	if uploadFolder == "" {
		uploadFolder = filepath.Join("uploads", "offer_letters")
	}
	return uploadFolder
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("IPORTAL_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

func GetListen() string {
	listen := os.Getenv("IPORTAL_LISTEN")
	if listen == "" {
		listen = ":8080"
	}
	return listen
}

// GetSessionSecret signs the session cookie. The default is only suitable
// for local use.
func GetSessionSecret() string {
	secret := os.Getenv("IPORTAL_SESSION_SECRET")
	if secret == "" {
		secret = "intern-portal-secret"
	}
	return secret
}
