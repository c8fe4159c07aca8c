package pending

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := NewPGStore(db)
	fixed := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	return store, mock
}

func TestPGStoreSetUpserts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO pending_kv").
		WithArgs("user-1", KeyResumeReady, "true", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Set(context.Background(), "user-1", KeyResumeReady, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreGet(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT value").
		WithArgs("user-1", KeyResumeData).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"skills":["Go"]}`))
	mock.ExpectQuery("SELECT value").
		WithArgs("user-1", KeyResumeReady).
		WillReturnError(sql.ErrNoRows)

	val, ok, err := store.Get(context.Background(), "user-1", KeyResumeData)
	if err != nil || !ok || val != `{"skills":["Go"]}` {
		t.Fatalf("Get present = %q %v %v", val, ok, err)
	}
	val, ok, err = store.Get(context.Background(), "user-1", KeyResumeReady)
	if err != nil || ok || val != "" {
		t.Fatalf("Get missing = %q %v %v", val, ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreRemove(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM pending_kv").
		WithArgs("user-1", KeyResumeData).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Remove(context.Background(), "user-1", KeyResumeData); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
