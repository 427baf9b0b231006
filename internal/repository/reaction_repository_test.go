package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionRepository_UpsertPostReaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReactionRepository(sqlxDB)

	ctx := context.Background()
	postID := uuid.New().String()
	userID := uuid.New().String()

	upsertQuery := `
		INSERT INTO reactions (reaction_id, post_id, user_id, reaction_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (post_id, user_id)
		DO UPDATE SET reaction_type = EXCLUDED.reaction_type, created_at = NOW()
	`

	t.Run("Успешное добавление реакции", func(t *testing.T) {
		mock.ExpectExec(upsertQuery).
			WithArgs(sqlmock.AnyArg(), postID, userID, "like").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertPostReaction(ctx, postID, userID, "like")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Повторная реакция перезаписывает тип", func(t *testing.T) {
		// the unique key turns the second insert into an update
		mock.ExpectExec(upsertQuery).
			WithArgs(sqlmock.AnyArg(), postID, userID, "love").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertPostReaction(ctx, postID, userID, "love")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectExec(upsertQuery).
			WithArgs(sqlmock.AnyArg(), postID, userID, "like").
			WillReturnError(errors.New("connection failed"))

		err := repo.UpsertPostReaction(ctx, postID, userID, "like")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при сохранении реакции")
	})
}

func TestReactionRepository_DeletePostReaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReactionRepository(sqlxDB)

	ctx := context.Background()
	postID := uuid.New().String()
	userID := uuid.New().String()

	t.Run("Успешное удаление реакции", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM reactions WHERE post_id = $1 AND user_id = $2`).
			WithArgs(postID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeletePostReaction(ctx, postID, userID)

		assert.NoError(t, err)
	})

	t.Run("Удаление несуществующей реакции не является ошибкой", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM reactions WHERE post_id = $1 AND user_id = $2`).
			WithArgs(postID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeletePostReaction(ctx, postID, userID)

		assert.NoError(t, err)
	})
}

func TestReactionRepository_CountPostReactions(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReactionRepository(sqlxDB)

	ctx := context.Background()
	postID := uuid.New().String()

	t.Run("Подсчёт общего числа реакций и лайков", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT(*)::int FROM reactions WHERE post_id = $1`).
			WithArgs(postID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

		mock.ExpectQuery(`SELECT COUNT(*)::int FROM reactions WHERE post_id = $1 AND reaction_type = 'like'`).
			WithArgs(postID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		total, likes, err := repo.CountPostReactions(ctx, postID)

		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Equal(t, 3, likes)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT(*)::int FROM reactions WHERE post_id = $1`).
			WithArgs(postID).
			WillReturnError(errors.New("connection failed"))

		_, _, err := repo.CountPostReactions(ctx, postID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при подсчёте реакций")
	})
}

func TestReactionRepository_CommentReactions(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReactionRepository(sqlxDB)

	ctx := context.Background()
	commentID := uuid.New().String()
	userID := uuid.New().String()

	t.Run("Успешное добавление реакции на комментарий", func(t *testing.T) {
		mock.ExpectExec(`
			INSERT INTO comment_reactions (reaction_id, comment_id, user_id, reaction_type)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (comment_id, user_id)
			DO UPDATE SET reaction_type = EXCLUDED.reaction_type, created_at = NOW()
		`).
			WithArgs(sqlmock.AnyArg(), commentID, userID, "like").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertCommentReaction(ctx, commentID, userID, "like")

		assert.NoError(t, err)
	})

	t.Run("Успешное удаление реакции на комментарий", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM comment_reactions WHERE comment_id = $1 AND user_id = $2`).
			WithArgs(commentID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteCommentReaction(ctx, commentID, userID)

		assert.NoError(t, err)
	})

	t.Run("Подсчёт лайков комментария", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT(*)::int FROM comment_reactions WHERE comment_id = $1 AND reaction_type = 'like'`).
			WithArgs(commentID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		likes, err := repo.CountCommentLikes(ctx, commentID)

		require.NoError(t, err)
		assert.Equal(t, 2, likes)
	})
}
