package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/models"
)

func newTestMasterRepo(t *testing.T) (*MasterRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	repo := NewMasterRepository(&DB{
		DB:      db,
		dialect: DialectSQLite,
		builder: newBuilder(DialectSQLite),
		logger:  logger.Nop(),
	})
	return repo, mock, db
}

func TestEnsureDefaults_SeedsAllCategories(t *testing.T) {
	repo, mock, db := newTestMasterRepo(t)
	defer db.Close()

	total := 0
	for _, values := range defaultMasters {
		total += len(values)
	}
	for i := 0; i < total; i++ {
		mock.ExpectExec("INSERT INTO masters").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	if err := repo.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListActive_Success(t *testing.T) {
	repo, mock, db := newTestMasterRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"value"}).
		AddRow("Alta").
		AddRow("Baja").
		AddRow("Media")

	mock.ExpectQuery("SELECT value FROM masters").
		WithArgs(models.MasterPrioridad, 1).
		WillReturnRows(rows)

	values, err := repo.ListActive(context.Background(), models.MasterPrioridad)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 3 || values[0] != "Alta" {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestAdd_RejectsEmptyValue(t *testing.T) {
	repo, _, db := newTestMasterRepo(t)
	defer db.Close()

	if err := repo.Add(context.Background(), models.MasterArea, "   "); err == nil {
		t.Fatal("expected error for blank value")
	}
}

func TestAdd_TrimsValue(t *testing.T) {
	repo, mock, db := newTestMasterRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO masters").
		WithArgs(models.MasterArea, "Compras", 1, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Add(context.Background(), models.MasterArea, "  Compras  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeactivate_LockedSeed(t *testing.T) {
	repo, mock, db := newTestMasterRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE masters").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT is_locked FROM masters").
		WithArgs(models.MasterEstado, "Pendiente").
		WillReturnRows(sqlmock.NewRows([]string{"is_locked"}).AddRow(1))

	err := repo.Deactivate(context.Background(), models.MasterEstado, "Pendiente")
	if !errors.Is(err, ErrMasterLocked) {
		t.Fatalf("expected ErrMasterLocked, got %v", err)
	}
}

func TestDeactivate_NotFound(t *testing.T) {
	repo, mock, db := newTestMasterRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE masters").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT is_locked FROM masters").
		WithArgs(models.MasterArea, "Inexistente").
		WillReturnError(sql.ErrNoRows)

	err := repo.Deactivate(context.Background(), models.MasterArea, "Inexistente")
	if !errors.Is(err, ErrMasterNotFound) {
		t.Fatalf("expected ErrMasterNotFound, got %v", err)
	}
}

func TestDeactivate_Success(t *testing.T) {
	repo, mock, db := newTestMasterRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE masters").
		WithArgs(0, models.MasterArea, 0, "Perceco"). // set is_active, then sorted where keys
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Deactivate(context.Background(), models.MasterArea, "Perceco"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
