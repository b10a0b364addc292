package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
	"github.com/tu-usuario/agroportal-api/internal/domain/repository"
	"github.com/tu-usuario/agroportal-api/pkg/jwt"
)

// FeedbackUseCase casos de uso de feedbacks: creación con notificación a los
// admins y resumen de valoraciones.
type FeedbackUseCase struct {
	feedbacks repository.FeedbackRepository
	notifier  *Notifier
}

// NewFeedbackUseCase construye el caso de uso de feedbacks.
func NewFeedbackUseCase(feedbacks repository.FeedbackRepository, notifier *Notifier) *FeedbackUseCase {
	return &FeedbackUseCase{feedbacks: feedbacks, notifier: notifier}
}

// Create crea un feedback del usuario autenticado.
func (uc *FeedbackUseCase) Create(ctx context.Context, ident jwt.Identity, in dto.FeedbackRequest) (*entity.Feedback, error) {
	fb := &entity.Feedback{
		UserID:       ident.UserID,
		UserName:     ident.FullName,
		UserEmail:    ident.Email,
		Profession:   in.Profession,
		FeedbackType: in.FeedbackType,
		Product:      in.Product,
		Message:      in.Message,
		Rating:       in.Rating,
		IsPublic:     in.IsPublic,
	}
	if err := uc.feedbacks.Insert(ctx, fb); err != nil {
		return nil, err
	}

	uc.notifier.NotifyAdmins(ctx, entity.Notification{
		Type:    NotifNewFeedback,
		Title:   "Nuevo feedback",
		Message: fmt.Sprintf("%s dejó un feedback con %d estrellas", fb.UserName, fb.Rating),
		Data:    map[string]any{"feedback_id": fb.ID, "rating": fb.Rating},
		Route:   "/admin/feedback",
	})
	return fb, nil
}

// Summary resumen de valoraciones del tipo dado: positivas (>= 4) vs negativas.
func (uc *FeedbackUseCase) Summary(ctx context.Context, feedbackType, product string) (*dto.RatingSummaryResponse, error) {
	positive, negative, err := uc.feedbacks.RatingSummary(ctx, feedbackType, product)
	if err != nil {
		return nil, err
	}
	return &dto.RatingSummaryResponse{
		Positive: positive,
		Negative: negative,
		Total:    positive + negative,
	}, nil
}
