package service

import (
	"os"
	"testing"
	"time"

	"github.com/op/go-logging"

	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/storage/model"
	"github.com/swecha/intern-portal/web/session"
)

func TestMain(m *testing.M) {
	logDir, _ := os.MkdirTemp("", "intern-portal-test-log")
	os.Setenv("IPORTAL_LOG_FOLDER", logDir)
	logger.InitLogger(logging.ERROR)

	code := m.Run()

	logger.CloseLogger()
	os.RemoveAll(logDir)
	os.Exit(code)
}

// setupDataFolder points the store at a throwaway folder so every test runs
// against empty tables.
func setupDataFolder(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("IPORTAL_DATA_FOLDER", dir)
	t.Setenv("IPORTAL_UPLOAD_FOLDER", dir+"/offer_letters")
}

func sessionFor(role model.Role, name string, college string) *session.User {
	return &session.User{
		Email:     name + "@example.org",
		Role:      role,
		Name:      name,
		College:   college,
		LoginTime: time.Now(),
	}
}
