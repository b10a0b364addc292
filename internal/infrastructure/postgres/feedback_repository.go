package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
)

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

// FeedbackRepo implementación de FeedbackRepository sobre PostgreSQL.
// El alcance por usuario no es propiedad estricta: un no-admin ve los feedbacks
// públicos más los suyos propios.
type FeedbackRepo struct {
	q Querier
}

// NewFeedbackRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedbackRepository(q Querier) *FeedbackRepo {
	return &FeedbackRepo{q: q}
}

var feedbackSearchCols = []string{"message", "user_name", "product"}

const feedbackCols = `id, COALESCE(user_id::text, ''), user_name, COALESCE(user_email, ''), COALESCE(profession, ''), feedback_type, COALESCE(product, ''), message, rating, is_public, created_at, updated_at`

func (r *FeedbackRepo) Table() string { return "feedbacks" }

// FetchWindow devuelve la ventana pedida más el total exacto bajo el mismo filtro.
func (r *FeedbackRepo) FetchWindow(ctx context.Context, q repository.ListQuery) ([]entity.Feedback, int, error) {
	where, args := listWhere(q.Search, feedbackSearchCols, "(is_public = TRUE OR user_id = $%d)", q.OwnerID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM feedbacks`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feedbacks: %w", err)
	}

	query := `SELECT ` + feedbackCols + ` FROM feedbacks` + where + windowSuffix("created_at DESC", len(args))
	rows, err := r.q.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedbacks: %w", err)
	}
	defer rows.Close()

	var list []entity.Feedback
	for rows.Next() {
		var f entity.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.UserName, &f.UserEmail, &f.Profession, &f.FeedbackType, &f.Product, &f.Message, &f.Rating, &f.IsPublic, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan feedback: %w", err)
		}
		list = append(list, f)
	}
	return list, total, rows.Err()
}

// GetByID obtiene un feedback por ID. Devuelve nil si no existe.
func (r *FeedbackRepo) GetByID(ctx context.Context, id int64) (*entity.Feedback, error) {
	var f entity.Feedback
	err := r.q.QueryRow(ctx, `SELECT `+feedbackCols+` FROM feedbacks WHERE id = $1`, id).
		Scan(&f.ID, &f.UserID, &f.UserName, &f.UserEmail, &f.Profession, &f.FeedbackType, &f.Product, &f.Message, &f.Rating, &f.IsPublic, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return &f, nil
}

// Insert persiste un feedback nuevo.
func (r *FeedbackRepo) Insert(ctx context.Context, f *entity.Feedback) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO feedbacks (user_id, user_name, user_email, profession, feedback_type, product, message, rating, is_public)
		VALUES (NULLIF($1, '')::uuid, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		f.UserID, f.UserName, f.UserEmail, f.Profession, f.FeedbackType, f.Product, f.Message, f.Rating, f.IsPublic,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// Update aplica los campos editables.
func (r *FeedbackRepo) Update(ctx context.Context, id int64, f *entity.Feedback) error {
	_, err := r.q.Exec(ctx, `
		UPDATE feedbacks
		SET profession = NULLIF($2, ''), feedback_type = $3, product = NULLIF($4, ''),
		    message = $5, rating = $6, is_public = $7, updated_at = now()
		WHERE id = $1`,
		id, f.Profession, f.FeedbackType, f.Product, f.Message, f.Rating, f.IsPublic,
	)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return nil
}

// Delete elimina un feedback por ID.
func (r *FeedbackRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}

// RatingSummary cuenta positivos (rating >= 4) y negativos bajo el tipo dado.
// Para feedback de producto el filtro por nombre es case-insensitive.
func (r *FeedbackRepo) RatingSummary(ctx context.Context, feedbackType, product string) (int, int, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE rating >= 4),
		       COUNT(*) FILTER (WHERE rating < 4)
		FROM feedbacks
		WHERE feedback_type = $1`
	args := []any{feedbackType}
	if product != "" {
		query += ` AND LOWER(product) = LOWER($2)`
		args = append(args, product)
	}

	var positive, negative int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&positive, &negative); err != nil {
		return 0, 0, fmt.Errorf("rating summary: %w", err)
	}
	return positive, negative, nil
}
