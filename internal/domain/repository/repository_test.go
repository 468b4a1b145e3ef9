package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"blog_backend/internal/common"
	"blog_backend/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestUserCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("u1", "alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user := &model.User{ID: "u1", Username: "alice", HashedPassword: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, now, user.CreatedAt)
}

func TestUserCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.User{ID: "u2", Username: "alice", HashedPassword: "hash"})
	assert.ErrorIs(t, err, common.ErrDuplicateUser)
}

func TestUserFindByUsername(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgUserRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "hashed_password", "created_at", "updated_at"}).
			AddRow("u1", "alice", "hash", now, now))
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("bob").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hash", user.HashedPassword)

	_, err = repo.FindByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostListRecent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgPostRepository(db)
	now := time.Now().UTC()

	cols := []string{"id", "title", "summary", "content", "cover", "author_id", "created_at", "updated_at", "id", "username"}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.created_at DESC, p.seq DESC LIMIT")).
		WithArgs(model.FeedLimit).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p2", "Second", "s", "c", "https://img/2", "u1", now, now, "u1", "alice").
			AddRow("p1", "First", "s", "c", "https://img/1", "gone", now, now, nil, nil))

	posts, err := repo.ListRecent(context.Background(), model.FeedLimit)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, &model.Author{ID: "u1", Username: "alice"}, posts[0].Author)
	assert.Nil(t, posts[1].Author)
	assert.Equal(t, "gone", posts[1].AuthorID)
}

func TestPostUpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgPostRepository(db)

	mock.ExpectQuery("UPDATE posts SET").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := repo.Update(context.Background(), &model.Post{ID: "nope"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostFindByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgPostRepository(db)

	mock.ExpectQuery("WHERE p.id =").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCommentDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgCommentRepository(db)

	mock.ExpectExec("DELETE FROM comments").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM comments").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "c1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "c1"), common.ErrNotFound)
}

func TestCommentUpdateMessage(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgCommentRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE comments SET message").
		WithArgs("edited", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "message", "author_id", "post_id", "created_at"}).
			AddRow("c1", "edited", "u1", "p1", now))
	mock.ExpectQuery("UPDATE comments SET message").
		WithArgs("edited", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "message", "author_id", "post_id", "created_at"}))

	c, err := repo.UpdateMessage(context.Background(), "c1", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Message)
	assert.Equal(t, "p1", c.PostID)

	_, err = repo.UpdateMessage(context.Background(), "missing", "edited")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCommentListByPost(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgCommentRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.created_at DESC, c.seq DESC")).
		WithArgs("p1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message", "author_id", "post_id", "created_at", "id", "username"}).
			AddRow("c2", "newer", "u1", "p1", now, "u1", "alice").
			AddRow("c1", "older", "u9", "p1", now.Add(-time.Minute), nil, nil))

	comments, err := repo.ListByPost(context.Background(), "p1", 50)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "alice", comments[0].Author.Username)
	assert.Nil(t, comments[1].Author)
}
