package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dsemenov/accountd/internal/common"
	"github.com/dsemenov/accountd/internal/server/models"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestPostgresCreate_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("A", "a@x.com", []byte("digest")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("id-1", created))

	repo := NewPostgresRepository(db)
	user, err := repo.Create(context.Background(), &models.User{
		Name: "A", Email: "a@x.com", PasswordHash: []byte("digest"),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.ID != "id-1" {
		t.Fatalf("expected repository-assigned id, got %q", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_DuplicateEmail(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	repo := NewPostgresRepository(db)
	_, err := repo.Create(context.Background(), &models.User{
		Name: "A", Email: "a@x.com", PasswordHash: []byte("digest"),
	})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestPostgresFindByEmail_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, created_at FROM users`)).
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)
	_, err := repo.FindByEmail(context.Background(), "missing@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestPostgresFindByID_RepositoryError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, created_at FROM users`)).
		WillReturnError(errors.New("connection refused"))

	repo := NewPostgresRepository(db)
	_, err := repo.FindByID(context.Background(), "id-1")
	if !errors.Is(err, common.ErrorRepository) {
		t.Fatalf("expected ErrorRepository, got %v", err)
	}
}

func TestPostgresUpdateByID_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	name := "B"
	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs("id-1", "B", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow("id-1", "B", "a@x.com", []byte("digest"), created))

	repo := NewPostgresRepository(db)
	user, err := repo.UpdateByID(context.Background(), "id-1", &models.UserDelta{Name: &name})
	if err != nil {
		t.Fatalf("UpdateByID error: %v", err)
	}
	if user.Name != "B" {
		t.Fatalf("expected updated name, got %q", user.Name)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateByID_NotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users`)).
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)
	_, err := repo.UpdateByID(context.Background(), "missing", &models.UserDelta{})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
