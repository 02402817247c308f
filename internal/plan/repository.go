package plan

import (
	"log/slog"
	"time"

	"github.com/myrjola/coachapp/internal/sqlite"
)

const (
	dateFormat      = time.DateOnly
	timestampFormat = "2006-01-02T15:04:05.000Z"
)

// baseRepository carries the shared database handles.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{db: db, logger: logger}
}

// repository groups the per-entity repositories behind one handle.
type repository struct {
	users    *sqliteUserRepository
	profiles *sqliteProfileRepository
	checkIns *sqliteCheckInRepository
	feedback *sqliteFeedbackRepository
	recovery *sqliteRecoveryRepository
	plans    *sqlitePlanRepository
}

// repositoryFactory wires the repositories to one database.
type repositoryFactory struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepositoryFactory(db *sqlite.Database, logger *slog.Logger) *repositoryFactory {
	return &repositoryFactory{db: db, logger: logger}
}

func (f *repositoryFactory) newRepository() *repository {
	return &repository{
		users:    newSQLiteUserRepository(f.db, f.logger),
		profiles: newSQLiteProfileRepository(f.db, f.logger),
		checkIns: newSQLiteCheckInRepository(f.db, f.logger),
		feedback: newSQLiteFeedbackRepository(f.db, f.logger),
		recovery: newSQLiteRecoveryRepository(f.db, f.logger),
		plans:    newSQLitePlanRepository(f.db, f.logger),
	}
}

func formatDate(date time.Time) string {
	return date.Format(dateFormat)
}
