package mytesting

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/musebox/musesummoner/internal/db"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type Suite struct {
	suite.Suite
	context.Context

	Cancel context.CancelFunc
	DB     *gorm.DB
}

func (s *Suite) SetupTest() {
	// Get current project root
	projectRoot, err := s.findProjectRoot()
	s.Require().NoError(err, "Failed to find project root")
	if envFile := filepath.Join(projectRoot, ".env"); fileExists(envFile) {
		s.Require().NoError(godotenv.Load(envFile))
	}

	s.Context, s.Cancel = context.WithCancel(context.TODO())

	// Each test gets its own shared in-memory database so parallel suites
	// never see each other's rows.
	dsn := fmt.Sprintf("file:mytesting-%d?mode=memory&cache=shared", rand.Int64())
	gormDB, err := db.OpenDB(dsn)
	s.Require().NoError(err, "Failed to open test database")
	s.DB = gormDB

	s.Require().NoError(db.AutoMigrate(s.Context, s.DB))
}

func (s *Suite) TearDownTest() {
	if s.DB != nil {
		s.Require().NoError(db.DropAll(s.Context, s.DB))
		s.Require().NoError(db.CloseDB(s.DB))
		s.DB = nil
	}
	s.Cancel()
}

// findProjectRoot searches for go.mod file starting from the current file location
func (s *Suite) findProjectRoot() (string, error) {
	// Get the directory of the current file
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get caller information")
	}

	dir := filepath.Dir(filename)

	// Walk up the directory tree looking for go.mod
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root directory
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("go.mod not found in any parent directory")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
