// Package mapper converts database models to API DTOs.
package mapper

import "github.com/scribeflow/scribeflow-api/internal/domain"

// ToUserDTO converts a User model to its API representation
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		ProfileImage: user.ProfileImage,
		Theme:        user.Theme,
		CreatedAt:    domain.FormatTimestamp(user.CreatedAt),
	}
}

// ToContentDTO converts a Content model to its API representation
func ToContentDTO(content *domain.Content) domain.ContentDTO {
	return domain.ContentDTO{
		ID:                   content.ID.String(),
		UserID:               content.UserID.String(),
		Title:                content.Title,
		OriginalContent:      content.OriginalContent,
		TransformedContent:   content.TransformedContent,
		ContentType:          content.ContentType,
		OriginalWordCount:    content.OriginalWordCount,
		TransformedWordCount: content.TransformedWordCount,
		Metadata:             content.Metadata,
		CreatedAt:            domain.FormatTimestamp(content.CreatedAt),
		UpdatedAt:            domain.FormatTimestamp(content.UpdatedAt),
	}
}

// ToContentDTOs converts a slice of Content models
func ToContentDTOs(contents []domain.Content) []domain.ContentDTO {
	dtos := make([]domain.ContentDTO, len(contents))
	for i := range contents {
		dtos[i] = ToContentDTO(&contents[i])
	}
	return dtos
}
